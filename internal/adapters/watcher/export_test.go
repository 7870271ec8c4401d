package watcher

// ConvertOp exposes convertOp for testing.
var ConvertOp = convertOp
