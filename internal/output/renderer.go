package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/quodlibetor/jsonlogprint/internal/model"
	"github.com/quodlibetor/jsonlogprint/internal/style"
)

// Renderer converts Values into logfmt text, consulting the Styler for
// terminal emphasis.
type Renderer struct {
	styler *style.Styler
}

// New returns a Renderer using the given styling policy.
func New(styler *style.Styler) *Renderer {
	return &Renderer{styler: styler}
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Value writes one value as `key=value`, recursing into objects and arrays.
// An empty key renders the bare value (the priority-field and array-element
// case). Depth is 0 for top-level fields and grows one per nesting level;
// keys and brackets are styled by depth.
func (r *Renderer) Value(w io.Writer, key string, v model.Value, depth int) error {
	prefix := ""
	if key != "" {
		prefix = r.styler.Depth(key, depth) + "="
	}

	switch v.Kind {
	case model.KindString:
		if strings.ContainsAny(v.Str, " \"\\") {
			return write(w, prefix+`"`+escaper.Replace(v.Str)+`"`)
		}
		return write(w, prefix+v.Str)
	case model.KindNumber:
		return write(w, prefix+v.Num.String())
	case model.KindBool:
		return write(w, prefix+strconv.FormatBool(v.Bool))
	case model.KindNull:
		return write(w, prefix+"null")
	case model.KindObject:
		// The key and opening brace share one styled run, like `nested{`.
		if err := write(w, r.styler.Depth(key+"{", depth)); err != nil {
			return err
		}
		for i, f := range v.Obj {
			if i > 0 {
				if err := write(w, " "); err != nil {
					return err
				}
			}
			if err := r.Value(w, f.Name, f.Value, depth+1); err != nil {
				return err
			}
		}
		return write(w, r.styler.Depth("}", depth))
	case model.KindArray:
		if err := write(w, r.styler.Depth(key+"[", depth)); err != nil {
			return err
		}
		for i, elem := range v.Arr {
			if i > 0 {
				if err := write(w, " "); err != nil {
					return err
				}
			}
			if err := r.Value(w, "", elem, depth+1); err != nil {
				return err
			}
		}
		return write(w, r.styler.Depth("]", depth))
	}
	return nil
}

func write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
