package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/nativeinput/device"
	"github.com/Alia5/nativeinput/driver"
)

type Devices struct {
	Format string `help:"Output format" enum:"text,json" default:"text" env:"NATIVEINPUT_DEVICES_FORMAT"`
}

type deviceInfo struct {
	Class string `json:"class"`
	Name  string `json:"name"`
	ID    string `json:"id"`
}

// Run is called by Kong when the devices command is executed.
func (d *Devices) Run(logger *slog.Logger) error {
	return d.list(os.Stdout, logger)
}

func (d *Devices) list(w io.Writer, logger *slog.Logger) error {
	// Enumeration never touches the cursor.
	drv := driver.New(nil, nil, &driver.Options{Logger: logger})
	if err := drv.Initialize(); err != nil {
		return err
	}

	if d.Format == "json" {
		out := struct {
			Driver  string       `json:"driver"`
			Version string       `json:"version"`
			Devices []deviceInfo `json:"devices"`
		}{Driver: drv.Name(), Version: drv.Version(), Devices: []deviceInfo{}}
		for _, c := range device.Classes {
			for _, dev := range drv.DevicesOf(c) {
				out.Devices = append(out.Devices, deviceInfo{Class: c.String(), Name: dev.DeviceName(), ID: dev.DeviceID()})
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if _, err := fmt.Fprintf(w, "%s %s\n", drv.Name(), drv.Version()); err != nil {
		return err
	}
	for _, c := range device.Classes {
		devs := drv.DevicesOf(c)
		if len(devs) == 0 {
			if _, err := fmt.Fprintf(w, "  %-10s (none)\n", c); err != nil {
				return err
			}
			continue
		}
		for _, dev := range devs {
			if _, err := fmt.Fprintf(w, "  %-10s %s [%s]\n", c, dev.DeviceName(), dev.DeviceID()); err != nil {
				return err
			}
		}
	}
	return nil
}
