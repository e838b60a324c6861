package filesystem

type (
	Reader interface {
		ReadRaw(path string) ([]byte, error)
	}
	Writer interface {
		WriteBytes(path string, data []byte) error
	}
)
