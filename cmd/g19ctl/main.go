package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/seagrayinc/g19ctl/internal/config"
	"github.com/seagrayinc/g19ctl/internal/g19"
	"github.com/seagrayinc/g19ctl/internal/hid"
	"github.com/seagrayinc/g19ctl/internal/log"
	"github.com/seagrayinc/g19ctl/internal/usbdiag"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

// errFailed signals an outcome already reported to the user; main only maps
// it to the process exit status.
var errFailed = errors.New("operation failed")

func main() {
	jsonPaths, yamlPaths, tomlPaths := config.CandidatePaths()

	var cli config.CLI
	kong.Parse(&cli,
		kong.Name("g19ctl"),
		kong.Description("Change the backlight color of a Logitech G19 keyboard."),
		kong.UsageOnError(),
		// Configuration files supply defaults; flags and env override them.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	_, closeFiles, err := log.Setup(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}

	mgr, err := hid.NewManager()
	if err != nil {
		fmt.Printf("Error initializing HID access: %v\n", err)
		os.Exit(1)
	}

	err = run(&cli, mgr)
	for _, c := range closeFiles {
		_ = c.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func run(cli *config.CLI, mgr hid.Manager) error {
	fmt.Println("Searching for Logitech G19 keyboard...")
	info, found := g19.Find(mgr, g19.VendorID, g19.ProductID)
	if !found {
		fmt.Println("Logitech G19 keyboard not found.")
		fmt.Println("Make sure it is connected, powered on (with its power adapter if it needs one) and that drivers are installed.")
		fmt.Println("Also check that the vendor/product IDs (VID/PID) are correct for your model.")
		if n := usbdiag.CountDevices(); n >= 0 {
			fmt.Printf("(%d USB devices are visible on the bus.)\n", n)
		}
		return errFailed
	}
	fmt.Println("Logitech G19 keyboard found!")

	if cli.Inspect {
		g19.Inspect(mgr, info)
		return nil
	}

	fmt.Printf("Trying to set color to R=%d, G=%d, B=%d...\n", cli.R, cli.G, cli.B)
	color := g19.Color{R: uint8(cli.R), G: uint8(cli.G), B: uint8(cli.B)}
	if !g19.SetColor(mgr, info, color, g19.Options{Verbose: cli.Verbose}) {
		fmt.Println("Setting the color failed.")
		return errFailed
	}
	fmt.Println("Color set successfully.")
	return nil
}
