package domain

// Prologue is the configuration block between the first two separators of a deck.
type Prologue struct {
	Marp     bool   `yaml:"marp"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Theme    string `yaml:"theme"`
	Header   string `yaml:"header"`
	Footer   string `yaml:"footer"`
	Paginate bool   `yaml:"paginate"`
}

// IsEmpty reports whether no field was set.
func (p *Prologue) IsEmpty() bool {
	return p == nil || *p == Prologue{}
}
