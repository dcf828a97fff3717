package records

import "github.com/dmitrijs2005/gophvault/internal/fields"

const (
	KeyFilename = "filename"
	KeyContent  = "content"
)

var fileEntrySchema = fields.Schema{
	{Key: KeyFilename, Kind: fields.KindString},
	{Key: KeyContent, Kind: fields.KindBytes},
}

// FileEntry is a named binary blob.
type FileEntry struct {
	base
}

// NewFileEntry creates a file record. The content is copied.
func NewFileEntry(filename string, content []byte, opts ...Option) *FileEntry {
	return &FileEntry{base: newBase(KindFileEntry, fields.Map{
		KeyFilename: fields.String(filename),
		KeyContent:  fields.Bytes(content),
	}, opts)}
}

// FromFileEntryFields rebuilds a file record from its field map.
func FromFileEntryFields(m fields.Map, opts ...Option) (*FileEntry, error) {
	b, err := fromFields(KindFileEntry, m, opts)
	if err != nil {
		return nil, err
	}
	return &FileEntry{base: b}, nil
}

func (f *FileEntry) Filename() string { return f.str(KeyFilename) }

// Content returns a copy of the file bytes.
func (f *FileEntry) Content() []byte { return f.raw(KeyContent) }

func (f *FileEntry) UpdateFilename(v string) { f.setStr(KeyFilename, v) }
func (f *FileEntry) UpdateContent(v []byte)  { f.setRaw(KeyContent, v) }

func (f *FileEntry) Clone() *FileEntry { return &FileEntry{base: f.base.clone()} }
