package serial

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
)

// detailedPorts is replaced in tests.
var detailedPorts = enumerator.GetDetailedPortsList

// Patterns for serial-capable device names under /dev.
var portPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
	regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
	regexp.MustCompile(`^ttyS\d+$`),   // Standard serial ports
	regexp.MustCompile(`^ttyAMA\d+$`), // ARM/Raspberry Pi serial
	regexp.MustCompile(`^ttymxc\d+$`), // i.MX serial ports
	regexp.MustCompile(`^ttyO\d+$`),   // OMAP serial ports
	regexp.MustCompile(`^ttySAC\d+$`), // Samsung serial ports
	regexp.MustCompile(`^ttyTHS\d+$`), // Tegra serial ports
}

// PortInfo describes a serial device found on the system.
type PortInfo struct {
	Name         string
	Path         string
	Description  string
	IsUSB        bool
	VendorID     string
	ProductID    string
	SerialNumber string
	Product      string
}

// ListPorts returns the sorted paths of serial devices on the system. The
// enumerator's sysfs view is preferred; a /dev scan is used when it fails.
func ListPorts() ([]string, error) {
	seen := make(map[string]bool)

	details, err := detailedPorts()
	if err == nil {
		for _, d := range details {
			if isSerialName(filepath.Base(d.Name)) && isCharacterDevice(d.Name) {
				seen[d.Name] = true
			}
		}
	}

	devDir := "/dev"
	entries, dirErr := os.ReadDir(devDir)
	if dirErr != nil {
		if err != nil {
			return nil, dirErr
		}
	} else {
		for _, entry := range entries {
			fullPath := filepath.Join(devDir, entry.Name())
			if isSerialName(entry.Name()) && isCharacterDevice(fullPath) {
				seen[fullPath] = true
			}
		}
	}

	ports := make([]string, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Strings(ports)
	return ports, nil
}

func isSerialName(name string) bool {
	for _, pattern := range portPatterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// GetPortInfo returns detailed information about a specific port
func GetPortInfo(portPath string) (*PortInfo, error) {
	if !isCharacterDevice(portPath) {
		return nil, ErrDeviceNotFound
	}

	name := filepath.Base(portPath)
	info := &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: getPortDescription(name),
	}

	if details, err := detailedPorts(); err == nil {
		enrichUSBInfo(info, details)
	}
	return info, nil
}

// getPortDescription provides human-readable descriptions for different port types
func getPortDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	case strings.HasPrefix(name, "pts"), strings.HasPrefix(name, "tty"):
		return "Terminal"
	default:
		return "Serial Port"
	}
}

// enrichUSBInfo copies USB metadata for info's device out of the enumerator
// listing.
func enrichUSBInfo(info *PortInfo, details []*enumerator.PortDetails) {
	for _, d := range details {
		if d == nil || (d.Name != info.Path && filepath.Base(d.Name) != info.Name) {
			continue
		}
		info.IsUSB = d.IsUSB
		if !d.IsUSB {
			return
		}
		info.VendorID = strings.ToLower(d.VID)
		info.ProductID = strings.ToLower(d.PID)
		info.SerialNumber = d.SerialNumber
		info.Product = d.Product
		if d.Product != "" {
			info.Description = d.Product
		}
		return
	}
}
