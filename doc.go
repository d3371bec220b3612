// Package serial opens and configures Linux serial ports for console use.
//
// Ports are opened non-blocking: Read returns (0, nil) when no byte is
// waiting, and Fd exposes the descriptor so callers can poll(2) it. The
// console subpackage builds a line reader on top of this.
//
// # Basic Usage
//
// Open a serial port with default configuration (115200 8N1, read-only):
//
//	port, err := serial.Open("/dev/ttyUSB0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	buffer := make([]byte, 256)
//	n, err := port.Read(buffer)
//
// # Configuration Options
//
// Use functional options for custom configuration:
//
//	port, err := serial.Open("/dev/ttyUSB0",
//	    serial.WithBaudRate(9600),
//	    serial.WithParity(serial.ParityEven),
//	    serial.WithStopBits(2),
//	    serial.WithLowLatency(true),
//	    serial.WithWritable(true),
//	)
//
// Ports are read-only unless WithWritable(true) is given. Low latency asks
// the UART driver to push received bytes to the tty layer immediately; drivers
// that do not support it leave the setting unchanged.
//
// # Port Discovery
//
// List available serial ports and get USB device metadata:
//
//	ports, err := serial.ListPorts()
//	for _, portPath := range ports {
//	    info, _ := serial.GetPortInfo(portPath)
//	    fmt.Printf("%s: %s (VID=%s PID=%s Serial=%s)\n",
//	        info.Path, info.Description, info.VendorID, info.ProductID, info.SerialNumber)
//	}
//
// # Error Handling
//
// Open failures are reported with sentinel errors wrapping the device path:
//
//	var (
//	    ErrDeviceNotFound    // no such device
//	    ErrPermissionDenied  // not allowed to open it
//	    ErrDeviceInUse       // another process holds it exclusively
//	    ErrPortClosed        // port already closed
//	    ErrNotWritable       // write on a read-only port
//	    // ... and more
//	)
//
// Use errors.Is() for error type checking:
//
//	if errors.Is(err, serial.ErrPermissionDenied) {
//	    // add the user to the dialout group
//	}
//
// # Default Configuration
//
//   - BaudRate: 115200
//   - DataBits: 8
//   - StopBits: 1
//   - Parity: None
//   - FlowControl: off
//   - LowLatency: off
//   - Writable: false
package serial
