package utcatalog

import "utcatalog-backend/lib/restyutil"

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput dumps every catalogue HTTP exchange to the given
// output. Call it before constructing clients, it only affects new ones.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
