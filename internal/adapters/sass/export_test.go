package sass

// FileURL exposes fileURL for testing.
var FileURL = fileURL
