package grba

var (
	Debug = false // set to true for verbose debug output
	PNG   = false // set to true to render PNG plots even when the config does not ask for them
	// Compile time checks that every sink satisfies the interface
	_ sink = (*csvSink)(nil)
	_ sink = (*sqliteSink)(nil)
	_ sink = (*plotSink)(nil)
	_ sink = (*chartSink)(nil)
)
