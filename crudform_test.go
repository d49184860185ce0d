package crudform_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	crudform "github.com/goliatone/go-crudform"
	"github.com/goliatone/go-crudform/pkg/model"
)

type Owner struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

type Pet struct {
	ID      uint `gorm:"primaryKey"`
	Name    string
	Age     int
	OwnerID uint
	Owner   Owner
}

var dbCounter atomic.Int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:crudformtest%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Owner{}, &Pet{}))
	return db
}

func TestNew_RequiresDB(t *testing.T) {
	_, err := crudform.New(nil, []any{&Owner{}})
	require.Error(t, err)
}

func TestNew_RegistersResources(t *testing.T) {
	admin, err := crudform.New(testDB(t), []any{&Owner{}, &Pet{}})
	require.NoError(t, err)

	res, ok := admin.Resource("pets")
	require.True(t, ok)
	require.Equal(t, "/admin/pets", res.Path())

	_, ok = admin.Resource("nope")
	require.False(t, ok)

	resources := admin.Resources()
	require.Len(t, resources, 2)
	require.Equal(t, "owners", resources[0].Table())
	require.Equal(t, "pets", resources[1].Table())
}

func TestAdmin_RenderCreateForm(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&Owner{Name: "Ada"}).Error)

	admin, err := crudform.New(db, []any{&Owner{}, &Pet{}})
	require.NoError(t, err)

	html, err := admin.RenderCreateForm(context.Background(), "pets", crudform.RenderRequest{})
	require.NoError(t, err)

	out := string(html)
	require.Contains(t, out, `action="/admin/pets"`)
	require.Contains(t, out, `name="name"`)
	require.Contains(t, out, `<option value="1">Ada</option>`)
	require.NotContains(t, out, `name="id"`)
}

func TestAdmin_WithBasePath(t *testing.T) {
	admin, err := crudform.New(testDB(t), []any{&Owner{}}, crudform.WithBasePath("/backoffice"))
	require.NoError(t, err)

	res, _ := admin.Resource("owners")
	require.Equal(t, "/backoffice/owners", res.Path())
	require.Equal(t, "/backoffice", admin.BasePath())
}

func TestAdmin_WithUIMeta(t *testing.T) {
	overlay := fstest.MapFS{
		"pets.yaml": &fstest.MapFile{Data: []byte(`
tables:
  pets:
    title: Companions
    fields:
      name:
        label: Pet Name
      age:
        hidden: true
`)},
	}

	admin, err := crudform.New(testDB(t), []any{&Owner{}, &Pet{}}, crudform.WithUIMeta(overlay))
	require.NoError(t, err)

	html, err := admin.RenderCreateForm(context.Background(), "pets", crudform.RenderRequest{})
	require.NoError(t, err)

	out := string(html)
	require.Contains(t, out, "Companions")
	require.Contains(t, out, "Pet Name")
	require.NotContains(t, out, `name="age"`)

	// The overlay applies to listings too: hidden columns stay out of the
	// browse table and label overrides name its headers.
	res, ok := admin.Resource("pets")
	require.True(t, ok)

	listing, err := res.RenderList(context.Background(), nil, crudform.RenderRequest{})
	require.NoError(t, err)

	table := string(listing)
	require.Contains(t, table, "Pet Name")
	require.NotContains(t, table, "Age")
}

func TestAdmin_WithLabeler(t *testing.T) {
	labeler := model.Labeler(func(name string) string {
		return "F:" + strings.ToUpper(name)
	})

	admin, err := crudform.New(testDB(t), []any{&Owner{}}, crudform.WithLabeler(labeler))
	require.NoError(t, err)

	html, err := admin.RenderCreateForm(context.Background(), "owners", crudform.RenderRequest{})
	require.NoError(t, err)
	require.Contains(t, string(html), "F:NAME")
}

func TestAdmin_UnknownTable(t *testing.T) {
	admin, err := crudform.New(testDB(t), []any{&Owner{}})
	require.NoError(t, err)

	_, err = admin.RenderCreateForm(context.Background(), "ghosts", crudform.RenderRequest{})
	require.Error(t, err)
}
