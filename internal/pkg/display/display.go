package display

import (
	"fmt"
	"strings"
	"sync"

	device "github.com/d2r2/go-hd44780"
	"github.com/d2r2/go-i2c"
	shittyLogger "github.com/d2r2/go-logger"
	"github.com/kitara-midi/kitara/internal/pkg/logger"
)

var log = logger.GetLogger()

func getDisplay(addr uint8, bus int, lcdType device.LcdType) (*device.Lcd, *i2c.I2C, error) {
	shittyLogger.ChangePackageLogLevel("i2c", shittyLogger.InfoLevel)
	shittyLogger.ChangePackageLogLevel("hd44780", shittyLogger.InfoLevel)

	lcdRaw, err := i2c.NewI2C(addr, bus)
	if err != nil {
		return nil, nil, err
	}

	lcd, err := device.NewLcd(lcdRaw, lcdType)
	if err != nil {
		return nil, lcdRaw, err
	}

	return lcd, lcdRaw, nil
}

func loadCustomCharacters(lcd *device.Lcd, characters [][]byte) {
	for i, char := range characters {
		var location = uint8(i) & 0x7

		lcd.Command(device.CMD_CGRAM_Set | (location << 3))
		lcd.Write(char)
	}
}

var barChars = [][]byte{
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F}, // "▁"
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F}, // "▂"
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F, 0x1F}, // "▃"
	{0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F}, // "▄"
	{0x00, 0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "▅"
	{0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "▆"
	{0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "▇"
	{0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "█"
}

// fret marker and note symbol used by exit screen
var exitChars = [][]byte{
	{0x00, 0x0E, 0x1F, 0x1F, 0x1F, 0x0E, 0x00, 0x00}, // "●"
	{0x04, 0x06, 0x05, 0x04, 0x0C, 0x1C, 0x18, 0x00}, // "♪"
}

var Bars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

const (
	FretMarker = '●'
	NoteSymbol = '♪'
)

var conversionMap = map[rune]byte{
	'▁': 0,
	'▂': 1,
	'▃': 2,
	'▄': 3,
	'▅': 4,
	'▆': 5,
	'▇': 6,
	'█': 7,
}

var exitConversionMap = map[rune]byte{
	FretMarker: 0,
	NoteSymbol: 1,
}

// Encode converts line into HD44780 character codes, custom characters are replaced
// with their CGRAM location, other non-ASCII runes become '?'.
// Result is padded with spaces or cut to given width.
func Encode(s string, width int, custom map[rune]byte) []byte {
	var out = make([]byte, 0, width)
	for _, r := range s {
		if len(out) == width {
			break
		}
		n, ok := custom[r]
		switch {
		case ok:
			out = append(out, n)
		case r < 0x20 || r > 0x7e:
			out = append(out, '?')
		default:
			out = append(out, byte(r))
		}
	}
	for len(out) < width {
		out = append(out, ' ')
	}
	return out
}

// Center pads s with spaces on both sides to given width.
func Center(s string, width int) string {
	l := len([]rune(s))
	if l >= width {
		return s
	}
	left := (width - l) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-l-left)
}

type DisplayData struct {
	Lines   [4]string
	LastMsg bool // inform LCD about loading exit message to load differrent custom character set
}

func HandleDisplay(wg *sync.WaitGroup, cfg ScreenConfig, dd <-chan DisplayData) {
	defer wg.Done()

	lcd, bus, err := getDisplay(cfg.Address, cfg.Bus, cfg.LcdType)
	if err != nil {
		log.Info(fmt.Sprintf("cannot open display: %v", err), logger.Warning)
		if bus != nil {
			bus.Close()
		}
		for range dd {
		}
		return
	}
	defer bus.Close()

	width, height := cfg.Size()

	loadCustomCharacters(lcd, barChars)

	lcd.BacklightOn()
	lcd.Clear()

	for data := range dd {
		var custom = conversionMap
		if data.LastMsg {
			loadCustomCharacters(lcd, exitChars)
			lcd.Clear()
			custom = exitConversionMap
		}

		for i, s := range data.Lines[:height] {
			lcd.SetPosition(i, 0)
			lcd.Write(Encode(s, width, custom))
		}
	}

	log.Info("display closed", logger.Debug)
}
