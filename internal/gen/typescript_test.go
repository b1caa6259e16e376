package gen

import (
	"errors"
	"testing"

	"github.com/danielroe/directus-typegen/internal/model"
	assert "github.com/stretchr/testify/require"
)

func articles() model.Collection {
	return model.Collection{
		Name: "articles",
		Fields: []model.Field{
			{Field: "id", Schema: &model.FieldSchema{PrimaryKey: true, DataType: "integer"}},
			{Field: "title", Schema: &model.FieldSchema{DataType: "text", IsNullable: true}, Meta: &model.FieldMeta{Required: false}},
		},
	}
}

func settings() model.Collection {
	return model.Collection{
		Name:      "settings",
		Singleton: true,
		Fields: []model.Field{
			{Field: "site_name", Schema: &model.FieldSchema{DataType: "text"}, Meta: &model.FieldMeta{Required: true}},
		},
	}
}

func TestTypeScript(t *testing.T) {
	out, err := TypeScript([]model.Collection{articles()}, Options{})
	assert.NoError(t, err)

	assert.Equal(t, "export interface Article {\n"+
		"\tid: number;\n"+
		"\ttitle?: string | null;\n"+
		"}\n"+
		"\n"+
		"export interface Schema {\n"+
		"\tarticles: Article[];\n"+
		"}\n", out)
}

func TestTypeScriptSingleton(t *testing.T) {
	out, err := TypeScript([]model.Collection{settings()}, Options{})
	assert.NoError(t, err)

	assert.Equal(t, "export interface Settings {\n"+
		"\tsite_name: string;\n"+
		"}\n"+
		"\n"+
		"export interface Schema {\n"+
		"\tsettings: Settings;\n"+
		"}\n", out)
}

func TestTypeScriptSingularizeSingletons(t *testing.T) {
	out, err := TypeScript([]model.Collection{settings()}, Options{SingularizeSingletons: true})
	assert.NoError(t, err)

	assert.Contains(t, out, "export interface Setting {\n\tsite_name: string;\n}\n")
	assert.Contains(t, out, "\tsettings: Setting;\n")
}

func TestTypeScriptMembers(t *testing.T) {
	c := model.Collection{
		Name: "blog-posts",
		Fields: []model.Field{
			{Field: "id", Schema: &model.FieldSchema{PrimaryKey: true, DataType: "uuid", IsNullable: true}},
			{Field: "first-name", Schema: &model.FieldSchema{DataType: "string"}, Meta: &model.FieldMeta{Note: "Given name\nof the author"}},
			{Field: "divider", Type: "alias", Meta: &model.FieldMeta{Hidden: true, Interface: "presentation-divider"}},
			{Field: "sort", Schema: &model.FieldSchema{DataType: "integer", IsNullable: true}, Meta: &model.FieldMeta{Hidden: true}},
			{Field: "author", Schema: &model.FieldSchema{DataType: "integer", IsNullable: true}, Meta: &model.FieldMeta{Interface: "select-dropdown-m2o"}},
			{Field: "tags", Type: "csv", Schema: &model.FieldSchema{DataType: "text", IsNullable: true}},
			{Field: "blocks", Type: "json", Schema: &model.FieldSchema{DataType: "json"}, Meta: &model.FieldMeta{Required: true}},
			{Field: "it's", Schema: &model.FieldSchema{DataType: "boolean"}},
		},
	}

	out, err := TypeScript([]model.Collection{c}, Options{SchemaName: "CustomDirectusTypes"})
	assert.NoError(t, err)

	assert.Equal(t, "export interface BlogPost {\n"+
		"\tid: string;\n"+
		"\t/** Given name of the author */\n"+
		"\t'first-name'?: string;\n"+
		"\tsort?: number | null;\n"+
		"\tauthor?: number | null;\n"+
		"\ttags?: string[] | null;\n"+
		"\tblocks: Record<string, unknown>;\n"+
		"\t'it\\'s'?: boolean;\n"+
		"}\n"+
		"\n"+
		"export interface CustomDirectusTypes {\n"+
		"\t'blog-posts': BlogPost[];\n"+
		"}\n", out)
}

func TestTypeScriptKeepsDeclarationOrder(t *testing.T) {
	collections := []model.Collection{
		{Name: "zebras"},
		{Name: "apples"},
		{Name: "settings", Singleton: true},
	}

	out, err := TypeScript(collections, Options{})
	assert.NoError(t, err)

	assert.Equal(t, "export interface Zebra {\n}\n\n"+
		"export interface Apple {\n}\n\n"+
		"export interface Settings {\n}\n\n"+
		"export interface Schema {\n"+
		"\tzebras: Zebra[];\n"+
		"\tapples: Apple[];\n"+
		"\tsettings: Settings;\n"+
		"}\n", out)
}

func TestTypeScriptIsIdempotent(t *testing.T) {
	collections := []model.Collection{articles(), settings()}

	first, err := TypeScript(collections, Options{})
	assert.NoError(t, err)

	second, err := TypeScript(collections, Options{})
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTypeScriptCollision(t *testing.T) {
	_, err := TypeScript([]model.Collection{
		{Name: "categories"},
		{Name: "category", Singleton: true},
	}, Options{})

	var collision *CollisionError
	assert.True(t, errors.As(err, &collision))
	assert.Equal(t, "Category", collision.TypeName)
	assert.Equal(t, []string{"categories", "category"}, collision.Collections)
}

func TestTypeScriptCollisionWithSchema(t *testing.T) {
	_, err := TypeScript([]model.Collection{{Name: "schemas"}}, Options{})

	var collision *CollisionError
	assert.True(t, errors.As(err, &collision))
	assert.Equal(t, "Schema", collision.TypeName)
	assert.Equal(t, []string{"schemas"}, collision.Collections)
}

func TestTypeScriptEmpty(t *testing.T) {
	out, err := TypeScript(nil, Options{})
	assert.NoError(t, err)
	assert.Equal(t, "export interface Schema {\n}\n", out)
}

func TestTypeScriptLeadingDigit(t *testing.T) {
	out, err := TypeScript([]model.Collection{{Name: "2024_reports"}}, Options{})
	assert.NoError(t, err)

	assert.Equal(t, "export interface _2024Report {\n"+
		"}\n"+
		"\n"+
		"export interface Schema {\n"+
		"\t'2024_reports': _2024Report[];\n"+
		"}\n", out)
}

func TestTypeScriptCollisionAfterPrefix(t *testing.T) {
	_, err := TypeScript([]model.Collection{{Name: "2024_reports"}, {Name: "_2024_reports"}}, Options{})

	var collision *CollisionError
	assert.True(t, errors.As(err, &collision))
	assert.Equal(t, "_2024Report", collision.TypeName)
}
