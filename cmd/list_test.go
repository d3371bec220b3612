package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	serial "github.com/allbin/serialconsole"
	"github.com/google/go-cmp/cmp"
)

func fakeLookup(usb map[string]bool) portInfoFunc {
	return func(path string) (*serial.PortInfo, error) {
		if strings.Contains(path, "missing") {
			return nil, errors.New("no such device")
		}
		return &serial.PortInfo{
			Name:        filepath.Base(path),
			Path:        path,
			Description: "test port",
			IsUSB:       usb[path],
		}, nil
	}
}

func TestFilterPorts(t *testing.T) {
	ports := []string{"/dev/ttyUSB0", "/dev/ttyACM1", "/dev/ttyS0", "/dev/ttySAC0", "/dev/ttyAMA0", "/dev/ttymxc0", "/dev/missing0"}
	lookup := fakeLookup(map[string]bool{"/dev/ttymxc0": true})

	tests := []struct {
		filter string
		want   []string
	}{
		{"", ports},
		{"all", ports},
		{"usb", []string{"/dev/ttyUSB0", "/dev/ttyACM1", "/dev/ttymxc0"}},
		{"standard", []string{"/dev/ttyS0"}},
		{"ARM", []string{"/dev/ttyAMA0"}},
		{"bogus", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got := filterPorts(ports, tt.filter, lookup)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("filterPorts(%q) mismatch (-want +got):\n%s", tt.filter, diff)
			}
		})
	}
}

func TestGetPortType(t *testing.T) {
	tests := map[string]string{
		"ttyUSB0": "USB Serial",
		"ttyACM0": "USB CDC/ACM",
		"ttyAMA0": "ARM Serial",
		"ttymxc1": "i.MX Serial",
		"ttySAC2": "Samsung Serial",
		"ttyTHS0": "Tegra Serial",
		"ttyO1":   "OMAP Serial",
		"ttyS3":   "Standard Serial",
		"rfcomm0": "Serial Port",
	}
	for name, want := range tests {
		if got := getPortType(name); got != want {
			t.Errorf("getPortType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	var out bytes.Buffer
	renderTable(&out, []string{"/dev/ttyUSB0", "/dev/missing0"}, fakeLookup(nil))

	got := out.String()
	for _, want := range []string{"Found 2 serial port(s)", "ttyUSB0", "USB Serial", "Unknown"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintPortInfo(t *testing.T) {
	var out bytes.Buffer
	printPortInfo(&out, &serial.PortInfo{
		Name:         "ttyUSB0",
		Path:         "/dev/ttyUSB0",
		Description:  "FT232R USB UART",
		IsUSB:        true,
		VendorID:     "0403",
		ProductID:    "6001",
		SerialNumber: "A50285BI",
	})

	got := out.String()
	for _, want := range []string{"/dev/ttyUSB0", "USB Device Information", "0403", "6001", "A50285BI"} {
		if !strings.Contains(got, want) {
			t.Errorf("info output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Product:") {
		t.Errorf("empty product should be omitted:\n%s", got)
	}
}
