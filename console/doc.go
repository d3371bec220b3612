// Package console reads line-delimited text from a serial device that behaves
// like an interactive console, such as a shell exposed over a UART.
//
// A Reader owns one open device. Each ReadLine call waits for the device to
// become readable, then accumulates bytes one at a time until the configured
// line end arrives:
//
//	cfg := console.DefaultConfig() // 115200 8N1, line end '\r'
//	cfg.LineEnd = '\n'
//
//	var r console.Reader
//	if err := r.Open("/dev/ttyUSB0", cfg); err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for {
//	    line, err := r.ReadLineString(time.Second)
//	    switch console.ResultOf(err) {
//	    case console.Success:
//	        fmt.Println(line)
//	    case console.Timeout:
//	        continue
//	    case console.Interrupted:
//	        // partial line in line; retry right away
//	    case console.Error:
//	        log.Fatal(err)
//	    }
//	}
//
// A call ends in exactly one of four outcomes. Success returns a nil error.
// Timeout (ErrTimeout) means nothing became readable within the timeout.
// Interrupted (ErrInterrupted) means the wait was broken by a signal or by
// Interrupt, or the line started but did not finish within the timeout.
// Error covers everything else, including ErrNotOpen. The device stays open
// after every outcome.
//
// A Reader holds no lock. Calls must be serialized by the caller; only
// Interrupt may be called from another goroutine.
package console
