// Package usbmon reads transfer events from the Linux usbmon facility and
// accumulates transferred byte counts over bounded time windows.
//
// Overview
//
//   - Source interface:
//     Wait(timeout) (ready, err)
//     Read(buf) (n, err)
//     Close() error
//
//     OpenDevice returns a Source backed by a usbmon character device such as
//     /dev/usbmon0 (all buses). Wait is poll(2) with a millisecond timeout;
//     Read is a single non-blocking read delivering one record.
//
//   - Record decoding:
//     DecodeLength extracts the urb length field from one raw binary record.
//     The legacy read path delivers only the first 48 bytes of the nominal
//     64-byte record; anything shorter counts as no data. Only submission
//     ('S') and callback ('C') events carry byte counts, selected by a
//     CountPolicy:
//
//     CountAll          'S' and 'C' (in-flight transfers counted at both ends)
//     CountCompletions  'C' only
//
//   - Monitor:
//     AccumulateFor(window) pumps ready records into a process-lifetime
//     running total without ever blocking past the remaining window budget.
//     TakeAccumulated returns and resets the total. The pairing gives the
//     full-cycle feedback model the PWM loop wants: whatever arrived during
//     one cycle's high and low phases decides the next cycle's split.
//
// Permissions
//
// Reading usbmon devices requires the usbmon kernel module (modprobe usbmon)
// and read access to /dev/usbmon*, which in practice means root. Open
// failures surface as ErrOpen and are fatal at startup; once a Source is
// open the accumulator has no error path, only empty windows.
//
// Package import path: github.com/usbled/usbled/pkg/usbmon
package usbmon
