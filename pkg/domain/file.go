package domain

// FileSource identifies which of a file's three mutually exclusive sources is set.
type FileSource string

const (
	FileSourceContent  FileSource = "content"
	FileSourceURL      FileSource = "url"
	FileSourceFilename FileSource = "filename"
)

// FileInfo is a named file. At most one of Contents, URL and Filename is non-nil; the
// setters keep it that way. Contents and URL are stored as-is: fetching and reading them
// belongs to the build system.
type FileInfo struct {
	Name       string  `mapstructure:"name"`
	Filename   *string `mapstructure:"filename"`
	Contents   *string `mapstructure:"contents"`
	URL        *string `mapstructure:"url"`
	Executable bool    `mapstructure:"executable"`
}

// Source reports the active source. A file with no source set reads as a filename,
// matching how the editor treats a freshly created file.
func (f FileInfo) Source() FileSource {
	switch {
	case f.Contents != nil:
		return FileSourceContent
	case f.URL != nil:
		return FileSourceURL
	default:
		return FileSourceFilename
	}
}

// SetContents makes inline contents the source and clears the others.
func (f *FileInfo) SetContents(contents string) {
	f.Contents = &contents
	f.URL = nil
	f.Filename = nil
}

// SetURL makes a URL the source and clears the others.
func (f *FileInfo) SetURL(url string) {
	f.URL = &url
	f.Contents = nil
	f.Filename = nil
}

// SetFilename makes a build-context filename the source and clears the others.
func (f *FileInfo) SetFilename(filename string) {
	f.Filename = &filename
	f.Contents = nil
	f.URL = nil
}

// SwitchSource changes the active source, keeping the current value of the target source
// when it already has one. Switching to the active source is a no-op.
func (f *FileInfo) SwitchSource(to FileSource) {
	if to == f.Source() && (f.Contents != nil || f.URL != nil || f.Filename != nil) {
		return
	}
	switch to {
	case FileSourceContent:
		f.SetContents(deref(f.Contents))
	case FileSourceURL:
		f.SetURL(deref(f.URL))
	case FileSourceFilename:
		f.SetFilename(deref(f.Filename))
	}
}

// Value returns the string of the active source.
func (f FileInfo) Value() string {
	switch f.Source() {
	case FileSourceContent:
		return deref(f.Contents)
	case FileSourceURL:
		return deref(f.URL)
	default:
		return deref(f.Filename)
	}
}

// Exclusive reports whether at most one source is set.
func (f FileInfo) Exclusive() bool {
	n := 0
	for _, p := range []*string{f.Contents, f.URL, f.Filename} {
		if p != nil {
			n++
		}
	}
	return n <= 1
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }
