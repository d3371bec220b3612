package serial

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// asyncLowLatency is ASYNC_LOW_LATENCY from <linux/serial.h>.
const asyncLowLatency = 1 << 13

// serialStruct mirrors struct serial_struct from <linux/serial.h>.
type serialStruct struct {
	Type          int32
	Line          int32
	Port          uint32
	IRQ           int32
	Flags         int32
	XmitFifoSize  int32
	CustomDivisor int32
	BaudBase      int32
	CloseDelay    uint16
	IOType        int8
	ReservedChar  [1]int8
	Hub6          int32
	ClosingWait   uint16
	ClosingWait2  uint16
	IOMemBase     uintptr
	IOMemRegShift uint16
	PortHigh      uint32
	IOMapBase     uintptr
}

// setLowLatency asks the UART driver to push received bytes to the tty layer
// immediately instead of batching them.
func setLowLatency(fd int) error {
	var ss serialStruct
	if err := ioctlSerial(fd, unix.TIOCGSERIAL, &ss); err != nil {
		return err
	}
	ss.Flags |= asyncLowLatency
	return ioctlSerial(fd, unix.TIOCSSERIAL, &ss)
}

func ioctlSerial(fd int, req uint, ss *serialStruct) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(unsafe.Pointer(ss)))
	if errno != 0 {
		return errno
	}
	return nil
}
