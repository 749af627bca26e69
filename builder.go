package streamjson

// Builder is the DOM builder (C6): an EventCallback-shaped consumer that
// assembles a parser's event stream into a Value tree, the Go analogue of
// json-dom.c's incremental JSON_DOM_PARSER. It holds no lookahead of its
// own; every event is handled as soon as it arrives, so it composes with
// Parser.Feed across arbitrary chunk boundaries exactly as the parser itself
// does.
type Builder struct {
	root Value
	path []*Value // non-owning back-references to open containers
	key  []byte   // stashed key bytes between EventKey and the value it names

	maintainOrder bool
	dup           DupKeyPolicy
}

// NewBuilder returns a Builder ready to receive events. maintainOrder is
// forwarded to every DICT the builder creates (Value.InitDict); dup selects
// how a repeated object key is resolved.
func NewBuilder(maintainOrder bool, dup DupKeyPolicy) *Builder {
	return &Builder{maintainOrder: maintainOrder, dup: dup}
}

// Callback returns the EventCallback to hand to NewParser.
func (b *Builder) Callback() EventCallback { return b.handleEvent }

// Root returns the value built so far. It is only meaningful once the
// parser this builder feeds has returned success from Finish.
func (b *Builder) Root() *Value { return &b.root }

func (b *Builder) handleEvent(kind EventKind, data []byte) error {
	switch kind {
	case EventArrayEnd, EventObjectEnd:
		b.path = b.path[:len(b.path)-1]
		return nil
	case EventKey:
		b.key = append(b.key[:0], data...)
		return nil
	}

	slot, err := b.slotFor()
	if err != nil {
		return err
	}
	if slot == nil {
		// A USEFIRST duplicate: the new value is parsed and discarded. A
		// discarded ARRAY/OBJECT still pushes a placeholder onto path so its
		// matching End event pops the same depth a kept container would
		// have, and so slotFor discards everything nested under it too.
		if kind == EventArrayBeg || kind == EventObjectBeg {
			b.path = append(b.path, nil)
		}
		return nil
	}

	if b.path == nil && (kind == EventArrayBeg || kind == EventObjectBeg) {
		// The container stack is allocated on its first push, with room
		// for 32 open containers; append doubles it from there.
		b.path = make([]*Value, 0, 32)
	}

	switch kind {
	case EventNull:
		slot.InitNull()
	case EventFalse:
		slot.InitBool(false)
	case EventTrue:
		slot.InitBool(true)
	case EventNumber:
		if err := b.initNumber(slot, data); err != nil {
			return err
		}
	case EventString:
		slot.InitString(data)
	case EventArrayBeg:
		slot.InitArray()
		b.path = append(b.path, slot)
	case EventObjectBeg:
		slot.InitDict(b.maintainOrder)
		b.path = append(b.path, slot)
	}
	return nil
}

// slotFor locates where the value about to be parsed belongs: a fresh
// element appended to the top-of-path array, a dict entry resolved per the
// duplicate-key policy, or the root itself when path is empty. A nil, nil
// return means "discard the upcoming value" (the USEFIRST case).
func (b *Builder) slotFor() (*Value, error) {
	if len(b.path) == 0 {
		return &b.root, nil
	}

	parent := b.path[len(b.path)-1]
	if parent == nil {
		// Nested inside a discarded (USEFIRST) duplicate: discard too.
		return nil, nil
	}
	if parent.Tag() == TagArray {
		return parent.ArrayAppend()
	}

	entry := parent.Dict().GetOrAdd(b.key)
	if entry.IsNew() {
		return entry, nil
	}
	switch b.dup {
	case DupKeyUseFirst:
		return nil, nil
	case DupKeyUseLast:
		entry.Fini()
		return entry, nil
	default:
		return nil, ErrDupKey
	}
}

func (b *Builder) initNumber(slot *Value, lit []byte) error {
	shape := classifyNumber(lit)
	switch shape.tag() {
	case TagInt32:
		slot.InitInt32(numberToInt32(lit))
	case TagUint32:
		slot.InitUint32(numberToUint32(lit))
	case TagInt64:
		slot.InitInt64(numberToInt64(lit))
	case TagUint64:
		slot.InitUint64(numberToUint64(lit))
	default:
		f, err := numberToDouble(lit)
		if err != nil {
			return err
		}
		slot.InitDouble(f)
	}
	return nil
}

// ParseValue is the one-shot convenience form of spec.md §4.6's
// json_dom_parse: feed all of input through a fresh Parser/Builder pair and
// return the resulting tree.
func ParseValue(cfg Config, input []byte, maintainOrder bool, dup DupKeyPolicy) (*Value, error) {
	b := NewBuilder(maintainOrder, dup)
	p := NewParser(cfg, b.Callback())
	if err := p.Feed(input); err != nil {
		return nil, err
	}
	if _, err := p.Finish(); err != nil {
		return nil, err
	}
	return b.Root(), nil
}
