package transcode

// ReadError is returned when the input could not be read.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "read input: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError is returned when the output could not be written or committed.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return "write output: " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
