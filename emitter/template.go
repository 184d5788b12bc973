package emitter

import (
	"fmt"

	pongo2 "github.com/flosch/pongo2/v6"

	"github.com/awantoch/eepromgen/constants"
)

// DefaultTemplate renders one declaration in the classic layout:
//
//	static const uint8_t name[] = {
//	    0x00, 0x01,
//	};
const DefaultTemplate = "{{ qualifier }} {{ name }}[] = {{ data|carray:per_line }};\n"

func init() {
	// Declarations are C source, not HTML.
	pongo2.SetAutoescape(false)
	if !pongo2.FilterExists("carray") {
		_ = pongo2.RegisterFilter("carray", filterCArray)
	}
	if !pongo2.FilterExists("hexbyte") {
		_ = pongo2.RegisterFilter("hexbyte", filterHexByte)
	}
}

// filterCArray turns a byte slice into "{ ... }" with an optional bytes per
// line argument.
func filterCArray(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	data, ok := in.Interface().([]byte)
	if !ok {
		return nil, &pongo2.Error{
			Sender:    "filter:carray",
			OrigError: fmt.Errorf("expected bytes, got %T", in.Interface()),
		}
	}
	perLine := constants.DefaultBytesPerLine
	if !param.IsNil() {
		perLine = param.Integer()
	}
	return pongo2.AsSafeValue(carray(data, perLine)), nil
}

// filterHexByte formats an integer as 0xhh.
func filterHexByte(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(fmt.Sprintf("0x%02x", in.Integer()&0xff)), nil
}

func compileTemplate(src string) (*pongo2.Template, error) {
	if src == "" {
		src = DefaultTemplate
	}
	tmpl, err := pongo2.FromString(src)
	if err != nil {
		return nil, fmt.Errorf("parse declaration template: %w", err)
	}
	return tmpl, nil
}
