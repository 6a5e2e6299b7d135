package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/d2r2/go-hd44780"
	"github.com/go-ini/ini"
	"github.com/kitara-midi/kitara/internal/pkg/display"
	"github.com/kitara-midi/kitara/internal/pkg/logger"
)

type Kitara struct {
	VirtualKeyboardName string
	QueueSize           int
	LogViewRate         time.Duration
	LogBufferSize       int
}

type KitaraConfig struct {
	Kitara Kitara
	Screen display.ScreenConfig
}

func LoadKitaraConfig(path string) (KitaraConfig, error) {
	var c KitaraConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read file with path %s: %w", path, err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return c, fmt.Errorf("failed to parse \"%s\": %w", path, err)
	}

	// [kitara]
	kitara := cfg.Section("kitara")
	c.Kitara.VirtualKeyboardName = kitara.Key("virtual_keyboard_name").MustString("kitara virtual keyboard")

	c.Kitara.QueueSize = kitara.Key("queue_size").MustInt(64)
	if c.Kitara.QueueSize < 1 {
		return c, fmt.Errorf("queue_size has to be greater than 0, got %d", c.Kitara.QueueSize)
	}

	logViewRate := kitara.Key("log_view_rate").MustInt(30)
	if logViewRate <= 0 {
		return c, fmt.Errorf("log_view_rate has to be greater than 0, got %d", logViewRate)
	}
	c.Kitara.LogViewRate = time.Second / time.Duration(logViewRate)

	c.Kitara.LogBufferSize = kitara.Key("log_buffer_size").MustInt(1000)
	if c.Kitara.LogBufferSize <= 0 {
		return c, fmt.Errorf("log_buffer_size has to be greater than 0, got %d", c.Kitara.LogBufferSize)
	}

	// [screen]
	screen := cfg.Section("screen")
	c.Screen.Enabled = screen.Key("enabled").MustBool(false)

	switch t := screen.Key("type").MustString("20x4"); t {
	case "16x2":
		c.Screen.LcdType = hd44780.LCD_16x2
	case "20x4":
		c.Screen.LcdType = hd44780.LCD_20x4
	default:
		return c, fmt.Errorf("unsupported screen type: \"%s\"", t)
	}

	c.Screen.Bus = screen.Key("bus").MustInt(1)

	address := screen.Key("address").MustInt(0x27)
	if address < 0 || address > 0x7f {
		return c, fmt.Errorf("screen address out of range: %d", address)
	}
	c.Screen.Address = uint8(address)

	c.Screen.UpdateRate = screen.Key("update_rate").MustInt(1)
	if c.Screen.UpdateRate <= 0 {
		return c, fmt.Errorf("update_rate has to be greater than 0, got %d", c.Screen.UpdateRate)
	}

	for i := range c.Screen.ExitMessage {
		c.Screen.ExitMessage[i] = screen.Key(fmt.Sprintf("exit_message%d", i+1)).String()
	}

	return c, nil
}

//go:embed kitara-config/kitara.config
//go:embed kitara-config/mapping.csv
var templateConfig embed.FS

const configDir = "kitara-config"

// createConfigDirectoryIfNeeded generates config directory inside root when missing.
// Existing directory is left untouched.
func createConfigDirectoryIfNeeded(root string) error {
	target := filepath.Join(root, configDir)
	_, err := os.Stat(target)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot open config directory: %w", err)
	}
	log.Info("config not exist, generating tree...", logger.Info)

	err = fs.WalkDir(templateConfig, configDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dst := filepath.Join(root, path)

		if d.IsDir() {
			err := os.Mkdir(dst, 0o777)
			if err != nil {
				return fmt.Errorf("cannot create \"%s\" directory: %w", dst, err)
			}
			return nil
		}

		data, err := fs.ReadFile(templateConfig, path)
		if err != nil {
			return fmt.Errorf("cannot read \"%s\" template file: %w", path, err)
		}

		err = os.WriteFile(dst, data, 0o666)
		if err != nil {
			return fmt.Errorf("cannot write data into \"%s\" file: %w", dst, err)
		}

		log.Info(fmt.Sprintf("Created \"%s\" file", dst), logger.Debug)
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("config generation done", logger.Info)
	return nil
}
