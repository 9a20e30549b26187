package model

// Buffer is a listed buffer in one running nvim instance.
type Buffer struct {
	Address  string
	ID       int
	Path     string
	Modified bool
}

func (b Buffer) DisplayText() string {
	name := baseName(b.Path)
	if name == "" {
		name = "[No Name]"
	}
	if b.Modified {
		return name + " [+]"
	}
	return name
}

func (b Buffer) SearchText() string {
	return b.Path
}
