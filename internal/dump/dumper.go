package dump

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/dshills/varwire/internal/format"
	"github.com/dshills/varwire/internal/logging"
	"github.com/dshills/varwire/internal/registry"
	"github.com/dshills/varwire/internal/resolver"
	"github.com/dshills/varwire/internal/stack"
	"github.com/dshills/varwire/internal/wire"
)

// Classifier determines the type name and resolver of a value.
type Classifier interface {
	Classify(v any) (typeName string, res resolver.Resolver)
}

// Formatter renders a value as display text.
type Formatter interface {
	Format(v any) string
}

// PathSeparator separates the segments of an attribute path.
const PathSeparator = "\t"

// Dumper encodes variables as wire records.
type Dumper struct {
	classifier Classifier
	formatter  Formatter
	encoder    *wire.Encoder
	sink       logging.Sink
}

// Option configures a Dumper.
type Option func(*Dumper)

// WithClassifier sets the classifier. The default is registry.Default().
func WithClassifier(c Classifier) Option {
	return func(d *Dumper) {
		if c != nil {
			d.classifier = c
		}
	}
}

// WithFormatter sets the value formatter.
func WithFormatter(f Formatter) Option {
	return func(d *Dumper) {
		if f != nil {
			d.formatter = f
		}
	}
}

// WithEncoder sets the record encoder.
func WithEncoder(e *wire.Encoder) Option {
	return func(d *Dumper) {
		if e != nil {
			d.encoder = e
		}
	}
}

// WithSink sets the sink receiving recovered failures.
func WithSink(s logging.Sink) Option {
	return func(d *Dumper) {
		if s != nil {
			d.sink = s
		}
	}
}

// New creates a Dumper.
func New(opts ...Option) *Dumper {
	d := &Dumper{
		classifier: registry.Default(),
		formatter:  format.New(),
		encoder:    wire.NewEncoder(wire.DefaultOptions()),
		sink:       logging.NewZapSink(nil),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve classifies and formats v into a Variable named name.
func (d *Dumper) Resolve(name string, v any) wire.Variable {
	display, isErr := unwrap(v)
	typeName, res := d.classifier.Classify(display)
	return wire.Variable{
		Name:          name,
		Type:          typeName,
		Value:         d.formatter.Format(display),
		IsContainer:   !isErr && res != nil,
		IsErrorOnEval: isErr,
	}
}

// Var returns the record for one variable. A panic while producing the
// record is returned as an error wrapping ErrEncode.
func (d *Dumper) Var(name string, v any) (record string, err error) {
	return d.VarWith(name, v, "")
}

// VarWith is Var with extra attributes appended to the record.
func (d *Dumper) VarWith(name string, v any, extra string) (record string, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = ""
			err = fmt.Errorf("%w: %s: %v", ErrEncode, name, r)
		}
	}()
	rv := d.Resolve(name, v)
	rv.Extra = extra
	return d.encoder.Encode(rv), nil
}

// Frame returns the concatenated records of the variables in vars, in
// sorted name order. Variables that fail are reported to the sink and
// left out.
func (d *Dumper) Frame(vars map[string]any) string {
	var b strings.Builder
	for _, name := range sortedNames(vars) {
		record, err := d.Var(name, vars[name])
		if err != nil {
			d.report("unexpected error, recovered safely", err, zap.String("variable", name))
			continue
		}
		b.WriteString(record)
	}
	return b.String()
}

// FrameJSON is Frame producing a JSON array of variable objects.
func (d *Dumper) FrameJSON(vars map[string]any) string {
	doc := "[]"
	for _, name := range sortedNames(vars) {
		object, err := d.varJSON(name, vars[name])
		if err == nil {
			doc, err = wire.AppendJSON(doc, object)
		}
		if err != nil {
			d.report("unexpected error, recovered safely", err, zap.String("variable", name))
		}
	}
	return doc
}

func (d *Dumper) varJSON(name string, v any) (object string, err error) {
	defer func() {
		if r := recover(); r != nil {
			object = ""
			err = fmt.Errorf("%w: %s: %v", ErrEncode, name, r)
		}
	}()
	return d.encoder.EncodeJSON(d.Resolve(name, v))
}

// Stack wraps the records of each frame in a frame element carrying the
// frame id, function, file and line.
func (d *Dumper) Stack(frames []*stack.Frame) string {
	var b strings.Builder
	for _, f := range frames {
		if f == nil {
			continue
		}
		fmt.Fprintf(&b, `<frame id="%s" name="%s" file="%s" line="%d">`+"\n",
			wire.EscapeXML(wire.NormalizeUTF8(f.ID)),
			wire.EscapeXML(wire.Quote(f.Function, wire.NameSafe)),
			wire.EscapeXML(wire.Quote(f.File, wire.NameSafe)),
			f.Line)
		b.WriteString(d.Frame(f.Locals))
		b.WriteString("</frame>\n")
	}
	return b.String()
}

// StackJSON is Stack producing a JSON array of frame objects, each with
// its variables under "vars".
func (d *Dumper) StackJSON(frames []*stack.Frame) string {
	doc := "[]"
	for _, f := range frames {
		if f == nil {
			continue
		}
		object, err := frameObject(f, d.FrameJSON(f.Locals))
		if err == nil {
			doc, err = wire.AppendJSON(doc, object)
		}
		if err != nil {
			d.report("unexpected error, recovered safely", err, zap.String("frame", f.ID))
		}
	}
	return doc
}

// frameObject builds the JSON object describing f, stopping at the first
// field that cannot be set.
func frameObject(f *stack.Frame, vars string) (string, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"id", f.ID},
		{"name", wire.NormalizeUTF8(f.Function)},
		{"file", wire.NormalizeUTF8(f.File)},
		{"line", f.Line},
	}

	object := "{}"
	var err error
	for _, field := range fields {
		if object, err = sjson.Set(object, field.path, field.value); err != nil {
			return "", fmt.Errorf("%w: frame %s: %s: %v", ErrEncode, f.ID, field.path, err)
		}
	}
	if object, err = sjson.SetRaw(object, "vars", vars); err != nil {
		return "", fmt.Errorf("%w: frame %s: vars: %v", ErrEncode, f.ID, err)
	}
	return object, nil
}

// Children returns the records for the children of v. Scalars have no
// children and produce an empty string.
func (d *Dumper) Children(v any) string {
	var b strings.Builder
	for _, c := range d.expand(v) {
		record, err := d.Var(c.Name, c.Value)
		if err != nil {
			d.report("unexpected error, recovered safely", err, zap.String("child", c.Name))
			continue
		}
		b.WriteString(record)
	}
	return b.String()
}

// ChildrenJSON is Children producing a JSON array, in resolver order.
func (d *Dumper) ChildrenJSON(v any) string {
	doc := "[]"
	for _, c := range d.expand(v) {
		object, err := d.varJSON(c.Name, c.Value)
		if err == nil {
			doc, err = wire.AppendJSON(doc, object)
		}
		if err != nil {
			d.report("unexpected error, recovered safely", err, zap.String("child", c.Name))
		}
	}
	return doc
}

func (d *Dumper) expand(v any) []resolver.Child {
	display, _ := unwrap(v)
	_, res := d.classifier.Classify(display)
	if res == nil {
		return nil
	}
	return d.children(res, display)
}

// children expands v, reporting a panicking resolver as no children.
func (d *Dumper) children(res resolver.Resolver, v any) (out []resolver.Child) {
	defer func() {
		if r := recover(); r != nil {
			d.report("resolving children failed", fmt.Errorf("%v", r), zap.String("resolver", res.Kind().String()))
			out = nil
		}
	}()
	return res.Children(v)
}

// Lookup resolves a tab-separated attribute path, starting with a variable
// name in vars and descending through resolvers.
func (d *Dumper) Lookup(vars map[string]any, path string) (any, error) {
	segments := strings.Split(path, PathSeparator)
	v, ok := vars[segments[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, strconv.Quote(segments[0]))
	}

	for _, seg := range segments[1:] {
		v, _ = unwrap(v)
		_, res := d.classifier.Classify(v)
		if res == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotContainer, strconv.Quote(seg))
		}
		next, ok := res.Resolve(v, seg)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, strconv.Quote(seg))
		}
		v = next
	}
	return v, nil
}

func sortedNames(vars map[string]any) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// report forwards a failure to the sink. A panicking sink is ignored.
func (d *Dumper) report(msg string, err error, fields ...zap.Field) {
	defer func() {
		_ = recover()
	}()
	d.sink.Error(msg, err, fields...)
}
