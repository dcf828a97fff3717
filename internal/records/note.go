package records

import "github.com/dmitrijs2005/gophvault/internal/fields"

const KeyText = "text"

var noteSchema = strs(KeyTitle, KeyText)

// Note is a free-form titled text.
type Note struct {
	base
}

func NewNote(title, text string, opts ...Option) *Note {
	return &Note{base: newBase(KindNote, fields.Map{
		KeyTitle: fields.String(title),
		KeyText:  fields.String(text),
	}, opts)}
}

func FromNoteFields(m fields.Map, opts ...Option) (*Note, error) {
	b, err := fromFields(KindNote, m, opts)
	if err != nil {
		return nil, err
	}
	return &Note{base: b}, nil
}

func (n *Note) Title() string { return n.str(KeyTitle) }
func (n *Note) Text() string  { return n.str(KeyText) }

func (n *Note) UpdateTitle(v string) { n.setStr(KeyTitle, v) }
func (n *Note) UpdateText(v string)  { n.setStr(KeyText, v) }

func (n *Note) Clone() *Note { return &Note{base: n.base.clone()} }
