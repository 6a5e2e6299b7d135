package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/awesome-gocui/gocui"
	"github.com/kitara-midi/kitara/internal/pkg/display"
	"github.com/kitara-midi/kitara/internal/pkg/fretboard/config"
	"github.com/kitara-midi/kitara/internal/pkg/keyboard"
	"github.com/kitara-midi/kitara/internal/pkg/logger"
	"github.com/kitara-midi/kitara/internal/pkg/midi/driver"
	"github.com/kitara-midi/kitara/internal/pkg/midi/driver/rtmidi"
	"github.com/kitara-midi/kitara/internal/pkg/midi/driver/smf"
	"github.com/kitara-midi/kitara/internal/pkg/typist"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const defaultConfigPath = "./kitara-config/kitara.config"

var (
	configPath = flag.String("config", defaultConfigPath, "path to application config, generated with defaults when missing")
	ui         = flag.Bool("ui", false, "engage debug ui")
	force256   = flag.Bool("256", false, "force 256 color mode")
	nocolor    = flag.Bool("nocolor", false, "disable color")
	silent     = flag.Bool("silent", false, "no output logging, best performance")
	list       = flag.Bool("list", false, "list available MIDI input devices and exit")
	dry        = flag.Bool("dry", false, "do not create virtual keyboard, only report key actions")
	replay     = flag.String("replay", "", "play notes of given MIDI file instead of listening to a device,\n"+
		"file name is matched against device-name argument")
	bpm      = flag.Int("bpm", 120, "tempo of -replay playback")
	logLevel = flag.Int("loglevel", 2,
		"logging level, each level enables additional information class (0-3, default: 2)\n"+
			"\navailable options:\n"+
			"0: general info (eg. device connection status)\n"+
			"1: key events (notes mapped to keyboard keys)\n"+
			"2: unassigned and discarded note events\n"+
			"3: raw midi messages",
	)
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: %s [flags] <device-name> <mapping-file>\n\n", os.Args[0])
	fmt.Fprintf(out, "device-name is matched case-insensitively against MIDI input device names,\n")
	fmt.Fprintf(out, "mapping-file is a .csv, .toml or .yaml fretboard mapping\n\nflags:\n")
	flag.PrintDefaults()
}

func init() {
	flag.Usage = usage
}

func handleSigs(wg *sync.WaitGroup, sigs <-chan os.Signal, cancel func()) {
	defer wg.Done()
	var counter int
	for sig := range sigs {
		if counter > 0 {
			fmt.Println("Dirty exit")
			os.Exit(1)
		}
		log.Info(fmt.Sprintf("signal received: %v", sig), logger.Debug)
		cancel()
		counter++
	}
}

// waitForStdin cancels given context when a line or end of input is read from stdin.
func waitForStdin(cancel func()) {
	_, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		log.Info(fmt.Sprintf("stdin closed: %v", err), logger.Debug)
	}
	cancel()
}

// runUI starts debug ui, leaving the ui cancels given context.
func runUI(cfg KitaraConfig, cancel func()) *gocui.Gui {
	g, err := GetCli()
	if err != nil {
		fmt.Printf("Failed to start ui - %v\n", err)
		os.Exit(1)
	}

	go func() {
		err := g.MainLoop()
		if err != nil && !errors.Is(err, gocui.ErrQuit) {
			log.Info(fmt.Sprintf("ui stopped: %v", err), logger.Error)
		}
		cancel()
	}()

	go func() {
		for {
			g.Update(Layout)
			time.Sleep(cfg.Kitara.LogViewRate)
		}
	}()

	time.Sleep(time.Millisecond * 500) // waiting for view init
	return g
}

func printLogs(done chan<- struct{}) {
	defer close(done)
	if *silent {
		for range logger.Messages {
		}
		return
	}

	au := aurora.NewAurora(!*nocolor)
	for data := range logger.Messages {
		msg, err := unpack(data)
		if err != nil {
			fmt.Printf("%s\n", string(data))
			continue
		}
		m := prepareString(msg, au, -1, *logLevel)
		if m != "" {
			fmt.Printf("%s\n", m)
		}
	}
}

func watchMapping(ctx context.Context, wg *sync.WaitGroup, path string) {
	defer wg.Done()
	for changed := range config.WatchMapping(ctx, path) {
		log.Info(
			"Mapping file changed on disk, restart to apply changes",
			zap.String("mapping", changed), logger.Warning,
		)
	}
}

func inputPorts(queueSize int) ([]driver.MIDIIn, error) {
	if *replay != "" {
		player, err := smf.LoadPlayer(*replay, *bpm)
		if err != nil {
			return nil, err
		}
		return []driver.MIDIIn{player}, nil
	}
	return rtmidi.GetInPorts(queueSize), nil
}

func fatal(format string, a ...interface{}) {
	fmt.Printf(format+"\n", a...)
	rtmidi.CloseDriver()
	os.Exit(1)
}

func main() {
	flag.Parse()
	*logLevel += 2

	if *force256 {
		os.Setenv("TERM", "xterm-256color")
	}

	if *list {
		for i, name := range rtmidi.PortNames() {
			fmt.Printf("%d: %s\n", i, name)
		}
		rtmidi.CloseDriver()
		return
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	deviceName, mappingPath := flag.Arg(0), flag.Arg(1)

	if *configPath == defaultConfigPath {
		err := createConfigDirectoryIfNeeded(".")
		if err != nil {
			fatal("Failed to generate config directory - %v", err)
		}
	}

	cfg, err := LoadKitaraConfig(*configPath)
	if err != nil {
		fatal("Failed to load kitara config - %v", err)
	}
	log.Info(fmt.Sprintf("kitara config: %+v", cfg), logger.Debug)

	mapping, err := config.LoadMapping(mappingPath)
	if err != nil {
		fatal("Failed to load config - %v", err)
	}
	fmt.Print(mapping.Table())

	ports, err := inputPorts(cfg.Kitara.QueueSize)
	if err != nil {
		fatal("Failed to prepare MIDI input - %v", err)
	}
	in, err := driver.SelectPort(ports, deviceName)
	if err != nil {
		fatal("Failed to find MIDI device - %v", err)
	}

	var kbd keyboard.Keyboard = keyboard.Null{}
	var closeKeyboard = func() error { return nil }
	if !*dry {
		virtual, err := keyboard.NewVirtual(cfg.Kitara.VirtualKeyboardName)
		if err != nil {
			fatal("Failed to create virtual keyboard - %v", err)
		}
		kbd = virtual
		closeKeyboard = virtual.Close
	}

	fmt.Printf("Successfully connected to MIDI Device: %s\n", in.Name())

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())

	withUI := *ui && !*silent
	var g *gocui.Gui
	if withUI {
		g = runUI(cfg, cancel)
	}

	// this wait-group has to be propagated everywhere where usual logging appear
	wg := sync.WaitGroup{}

	wg.Add(1)
	go handleSigs(&wg, sigs, cancel)

	activity := NewActivity()
	diagnostics := make(chan typist.Diagnostic, cfg.Kitara.QueueSize)
	go activity.Consume(diagnostics)

	wg.Add(1)
	go watchMapping(ctx, &wg, mappingPath)

	var frames *lcdFrames
	if cfg.Screen.Enabled || withUI {
		wg.Add(1)
		frames = newLCDFrames(GenerateDisplayData(ctx, &wg, cfg.Screen, activity))
		if cfg.Screen.Enabled {
			out, err := frames.SpawnScreen()
			if err == nil {
				wg.Add(1)
				go display.HandleDisplay(&wg, cfg.Screen, out)
			}
		}
		if withUI {
			out, err := frames.SpawnPreview()
			if err == nil {
				go lcdView(g, out)
			}
		}
	}

	var logsDone = make(chan struct{})
	if withUI {
		go func() {
			defer close(logsDone)
			logView(g, !*nocolor, *logLevel, cfg.Kitara.LogBufferSize, cfg.Kitara.LogViewRate)
		}()
		go overviewView(g, !*nocolor, mapping, activity, frames.ScreenDropped, cfg.Kitara.LogViewRate)
	} else {
		go printLogs(logsDone)
		fmt.Println("press enter to exit")
		go waitForStdin(cancel)
	}

	log.Info("Listening", zap.String("device_name", in.Name()), zap.String("mapping", mappingPath), logger.Info)

	var exitCode int
	listener := typist.NewListener(mapping, kbd, diagnostics)
	err = listener.Run(ctx, in)
	switch {
	case err == nil:
	case *replay != "" && errors.Is(err, typist.ConnectionLost):
		log.Info("Replay finished", zap.String("device_name", in.Name()), logger.Info)
	default:
		log.Info(fmt.Sprintf("Listening failed: %v", err), zap.String("device_name", in.Name()), logger.Error)
		exitCode = 1
	}

	cancel()
	close(diagnostics)
	err = closeKeyboard()
	if err != nil {
		log.Info(fmt.Sprintf("failed to close virtual keyboard: %v", err), logger.Warning)
	}
	signal.Stop(sigs)
	close(sigs)
	err = frames.ClosePreview()
	if err != nil {
		log.Info(fmt.Sprintf("lcd preview already detached: %v", err), logger.Debug)
	}
	if g != nil {
		g.Close()
	}
	rtmidi.CloseDriver()

	// closing logger can be safely invoked only when all internally running goroutines (that may emit logs) are done
	wg.Wait()
	close(logger.Messages)
	<-logsDone

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
