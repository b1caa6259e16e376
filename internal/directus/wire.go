package directus

import (
	"cmp"
	"slices"

	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/source"
)

// Collection is a collection as returned by `GET /collections` and as
// stored in schema snapshots.
type Collection struct {
	Collection string            `json:"collection" yaml:"collection"`
	Meta       *CollectionMeta   `json:"meta" yaml:"meta"`
	Schema     *CollectionSchema `json:"schema" yaml:"schema"`
}

type CollectionMeta struct {
	Singleton bool `json:"singleton" yaml:"singleton"`
	Hidden    bool `json:"hidden" yaml:"hidden"`
}

type CollectionSchema struct {
	Name string `json:"name" yaml:"name"`
}

// Field is a field as returned by `GET /fields` and as stored in schema
// snapshots.
type Field struct {
	Collection string       `json:"collection" yaml:"collection"`
	Field      string       `json:"field" yaml:"field"`
	Type       string       `json:"type" yaml:"type"`
	Meta       *FieldMeta   `json:"meta" yaml:"meta"`
	Schema     *FieldSchema `json:"schema" yaml:"schema"`
}

type FieldMeta struct {
	Interface   string `json:"interface" yaml:"interface"`
	Hidden      bool   `json:"hidden" yaml:"hidden"`
	Required    bool   `json:"required" yaml:"required"`
	Note        string `json:"note" yaml:"note"`
	Description string `json:"description" yaml:"description"`
	Sort        *int   `json:"sort" yaml:"sort"`
}

type FieldSchema struct {
	DataType     string `json:"data_type" yaml:"data_type"`
	IsNullable   bool   `json:"is_nullable" yaml:"is_nullable"`
	IsPrimaryKey bool   `json:"is_primary_key" yaml:"is_primary_key"`
}

// Assemble groups fields under their collections. Collection order is kept
// as given. Fields are ordered by their sort value, fields without one
// last, keeping the given order for ties. Folders (collections without a
// table) are skipped and so are system collections unless includeSystem is
// set.
func Assemble(collections []Collection, fields []Field, includeSystem bool) []model.Collection {
	byCollection := make(map[string][]Field, len(collections))
	for _, f := range fields {
		byCollection[f.Collection] = append(byCollection[f.Collection], f)
	}

	out := make([]model.Collection, 0, len(collections))
	for _, c := range collections {
		if c.Schema == nil {
			continue
		}

		if !includeSystem && source.IsSystemCollection(c.Collection) {
			continue
		}

		cfs := byCollection[c.Collection]
		slices.SortStableFunc(cfs, compareSort)

		mc := model.Collection{
			Name:      c.Collection,
			Singleton: c.Meta != nil && c.Meta.Singleton,
			Fields:    make([]model.Field, 0, len(cfs)),
		}

		for _, f := range cfs {
			mc.Fields = append(mc.Fields, f.toModel())
		}

		out = append(out, mc)
	}

	return out
}

func compareSort(a, b Field) int {
	as, bs := a.sort(), b.sort()

	switch {
	case as == nil && bs == nil:
		return 0
	case as == nil:
		return 1
	case bs == nil:
		return -1
	}

	return cmp.Compare(*as, *bs)
}

func (f Field) sort() *int {
	if f.Meta == nil {
		return nil
	}

	return f.Meta.Sort
}

func (f Field) toModel() model.Field {
	mf := model.Field{
		Field: f.Field,
		Type:  f.Type,
	}

	if f.Schema != nil {
		mf.Schema = &model.FieldSchema{
			DataType:   f.Schema.DataType,
			IsNullable: f.Schema.IsNullable,
			PrimaryKey: f.Schema.IsPrimaryKey,
		}
	}

	if f.Meta != nil {
		mf.Meta = &model.FieldMeta{
			Required:    f.Meta.Required,
			Hidden:      f.Meta.Hidden,
			Interface:   f.Meta.Interface,
			Note:        f.Meta.Note,
			Description: f.Meta.Description,
		}
	}

	return mf
}
