package rowmap

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Text scans a nullable text column; NULL becomes "".
func Text(p *string) any { return &nullText{p: p} }

type nullText struct{ p *string }

func (n *nullText) Scan(src any) error {
	var ns sql.NullString
	if err := ns.Scan(src); err != nil {
		return err
	}
	*n.p = ns.String
	return nil
}

// Int scans a nullable integer column; NULL becomes 0.
func Int(p *int) any { return &nullInt{p: p} }

type nullInt struct{ p *int }

func (n *nullInt) Scan(src any) error {
	var ni sql.NullInt64
	if err := ni.Scan(src); err != nil {
		return err
	}
	*n.p = int(ni.Int64)
	return nil
}

// OptionalID scans a nullable foreign key; NULL becomes nil so that "no
// reference" stays distinguishable from any real id.
func OptionalID(p **int64) any { return &optionalID{p: p} }

type optionalID struct{ p **int64 }

func (o *optionalID) Scan(src any) error {
	var ni sql.NullInt64
	if err := ni.Scan(src); err != nil {
		return err
	}
	if !ni.Valid {
		*o.p = nil
		return nil
	}
	v := ni.Int64
	*o.p = &v
	return nil
}

// Money scans a numeric column into a decimal; NULL becomes zero.
func Money(p *decimal.Decimal) any { return &money{p: p} }

type money struct{ p *decimal.Decimal }

func (m *money) Scan(src any) error {
	var nd decimal.NullDecimal
	if err := nd.Scan(src); err != nil {
		return err
	}
	if !nd.Valid {
		*m.p = decimal.Zero
		return nil
	}
	*m.p = nd.Decimal
	return nil
}

// Flag scans a boolean that may be stored as BOOLEAN, as 0/1 or as text.
// NULL becomes false.
func Flag(p *bool) any { return &flag{p: p} }

type flag struct{ p *bool }

func (f *flag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f.p = false
	case bool:
		*f.p = v
	case int64:
		*f.p = v != 0
	case []byte:
		return f.parse(string(v))
	case string:
		return f.parse(v)
	default:
		return fmt.Errorf("rowmap: cannot scan %T into bool", src)
	}
	return nil
}

func (f *flag) parse(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("rowmap: cannot scan %q into bool", s)
	}
	*f.p = b
	return nil
}
