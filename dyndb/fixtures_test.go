package dyndb_test

import (
	"fmt"
	"time"

	"github.com/raywall/fast-lambda-toolkit/dyndb"
)

type testStatus int

const (
	statusActive testStatus = iota + 1
	statusDeleted
)

func (s testStatus) EnumName() string {
	switch s {
	case statusActive:
		return "ACTIVE"
	case statusDeleted:
		return "DELETED"
	}
	return ""
}

func parseTestStatus(name string) (dyndb.Enum, error) {
	switch name {
	case "ACTIVE":
		return statusActive, nil
	case "DELETED":
		return statusDeleted, nil
	}
	return nil, fmt.Errorf("unknown status %q", name)
}

type nestedData struct {
	FieldOne testStatus
	FieldTwo int
}

func (n nestedData) Fields() []dyndb.Field {
	return []dyndb.Field{
		{Name: "field_one", Value: n.FieldOne},
		{Name: "field_two", Value: n.FieldTwo},
	}
}

func (n *nestedData) Schema() []dyndb.FieldSpec {
	return []dyndb.FieldSpec{
		{Name: "field_one", Kind: dyndb.KindEnum, ParseEnum: parseTestStatus},
		{Name: "field_two", Kind: dyndb.KindInt},
	}
}

func (n *nestedData) Set(name string, v any) error {
	switch name {
	case "field_one":
		return dyndb.Assign(&n.FieldOne, v)
	case "field_two":
		return dyndb.Assign(&n.FieldTwo, v)
	}
	return dyndb.UnknownField(name)
}

func decodeNested(raw any) (any, error) {
	switch x := raw.(type) {
	case []nestedData:
		return x, nil
	case []any:
		out := make([]nestedData, 0, len(x))
		for _, item := range x {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("unexpected nested item %T", item)
			}
			var n nestedData
			if err := dyndb.GraphQLPayloadToInput(m, &n, nil); err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unexpected nested data %T", raw)
}

type createInput struct {
	ID            string
	Name          string
	Size          float64
	NestedData    []nestedData
	CreatedBy     string
	CreatedAt     time.Time
	MyFlag        bool
	CompanyNumber *string
	CompanyType   *string
	ItemType      string
	Status        testStatus
}

func (c createInput) Fields() []dyndb.Field {
	return []dyndb.Field{
		{Name: "id", Value: c.ID},
		{Name: "name", Value: c.Name},
		{Name: "size", Value: c.Size},
		{Name: "nested_data", Value: c.NestedData},
		{Name: "created_by", Value: c.CreatedBy},
		{Name: "created_at", Value: c.CreatedAt},
		{Name: "my_flag", Value: c.MyFlag},
		{Name: "company_number", Value: c.CompanyNumber},
		{Name: "company_type", Value: c.CompanyType},
		{Name: "item_type", Value: c.ItemType},
		{Name: "status", Value: c.Status},
	}
}

type updateInput struct {
	ID            string `validate:"required"`
	UpdatedAt     time.Time
	Name          *string
	Size          *float64
	MyFlag        *bool
	NestedData    []nestedData
	CompanyNumber *string
	CompanyType   *string
	Status        *testStatus
}

func (u updateInput) Fields() []dyndb.Field {
	return []dyndb.Field{
		{Name: "id", Value: u.ID},
		{Name: "updated_at", Value: u.UpdatedAt},
		{Name: "name", Value: u.Name},
		{Name: "size", Value: u.Size},
		{Name: "my_flag", Value: u.MyFlag},
		{Name: "nested_data", Value: u.NestedData},
		{Name: "company_number", Value: u.CompanyNumber},
		{Name: "company_type", Value: u.CompanyType},
		{Name: "status", Value: u.Status},
	}
}

func (u *updateInput) Schema() []dyndb.FieldSpec {
	return []dyndb.FieldSpec{
		{Name: "id", Kind: dyndb.KindString},
		{Name: "updated_at", Kind: dyndb.KindDateTime},
		{Name: "name", Kind: dyndb.KindString},
		{Name: "size", Kind: dyndb.KindFloat},
		{Name: "my_flag", Kind: dyndb.KindBool},
		{Name: "nested_data", Kind: dyndb.KindList, Decode: decodeNested},
		{Name: "company_number", Kind: dyndb.KindString},
		{Name: "company_type", Kind: dyndb.KindString},
		{Name: "status", Kind: dyndb.KindEnum, ParseEnum: parseTestStatus},
	}
}

func (u *updateInput) Set(name string, v any) error {
	switch name {
	case "id":
		return dyndb.Assign(&u.ID, v)
	case "updated_at":
		return dyndb.Assign(&u.UpdatedAt, v)
	case "name":
		return dyndb.AssignOpt(&u.Name, v)
	case "size":
		return dyndb.AssignOpt(&u.Size, v)
	case "my_flag":
		return dyndb.AssignOpt(&u.MyFlag, v)
	case "nested_data":
		return dyndb.Assign(&u.NestedData, v)
	case "company_number":
		return dyndb.AssignOpt(&u.CompanyNumber, v)
	case "company_type":
		return dyndb.AssignOpt(&u.CompanyType, v)
	case "status":
		return dyndb.AssignOpt(&u.Status, v)
	}
	return dyndb.UnknownField(name)
}

// fieldList é um Input ad hoc para casos de borda.
type fieldList []dyndb.Field

func (f fieldList) Fields() []dyndb.Field { return f }

type testParser struct {
	in      dyndb.Input
	id      string
	hasName bool
	company string
}

func newCreateParser(c createInput) testParser {
	p := testParser{in: c, id: c.ID, hasName: true}
	if c.CompanyNumber != nil {
		p.company = *c.CompanyNumber
	}
	return p
}

func newUpdateParser(u updateInput) testParser {
	p := testParser{in: u, id: u.ID, hasName: u.Name != nil}
	if u.CompanyNumber != nil {
		p.company = *u.CompanyNumber
	}
	return p
}

func (p testParser) Input() dyndb.Input { return p.in }
func (p testParser) PK() string         { return "TEST#" + p.id }
func (p testParser) SK() string         { return p.PK() }

func (p testParser) PKGSI1() (bool, string) {
	return false, "TEST"
}

func (p testParser) SKGSI1() (bool, string) {
	if !p.hasName {
		return false, ""
	}
	return true, "COMPANY#" + p.company
}
