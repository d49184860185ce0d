package crud

import (
	"net/http"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/goliatone/go-crudform/pkg/model"
	"github.com/goliatone/go-crudform/pkg/orm"
)

// CreateForm builds the create form for the resource. Columns named in
// defaults are not rendered; their values are merged back in at submit
// time. Default keys that match no column are ignored with a warning.
func (r *Resource) CreateForm(defaults map[string]any) (model.FormModel, error) {
	r.warnUnknownDefaults(defaults)

	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}

	form, err := r.builder.Build(r.entity, model.BuildRequest{
		Intent:   model.IntentCreate,
		Endpoint: r.Path(),
		Method:   http.MethodPost,
		Defaults: names,
	})
	if err != nil {
		return model.FormModel{}, err
	}

	return r.finishForm(form)
}

// UpdateForm builds the update form for one row. Foreign key columns are
// never editable here; except drops further columns by name.
func (r *Resource) UpdateForm(key string, except []string) (model.FormModel, error) {
	form, err := r.builder.Build(r.entity, model.BuildRequest{
		Intent:   model.IntentUpdate,
		Endpoint: r.Path() + "/" + key,
		Method:   http.MethodPost,
		Except:   except,
	})
	if err != nil {
		return model.FormModel{}, err
	}

	return r.finishForm(form)
}

// DeleteForm builds a confirmation form carrying a single select over the
// resource's current rows.
func (r *Resource) DeleteForm() (model.FormModel, error) {
	form, err := r.builder.Build(r.entity, model.BuildRequest{
		Intent:   model.IntentDelete,
		Endpoint: r.Path() + "/delete",
		Method:   http.MethodPost,
	})
	if err != nil {
		return model.FormModel{}, err
	}

	options, err := r.Options("", 0)
	if err != nil {
		return model.FormModel{}, err
	}

	form.Fields = append(form.Fields, model.Field{
		Name:     r.entity.PrimaryKey.DBName,
		Type:     model.FieldTypeString,
		Required: true,
		Label:    r.entity.PrettyName(),
		Options:  options,
	})

	return r.finishForm(form)
}

// finishForm populates relationship selects and runs the decorator chain.
func (r *Resource) finishForm(form model.FormModel) (model.FormModel, error) {
	if err := r.populateRelations(&form); err != nil {
		return model.FormModel{}, err
	}

	for _, dec := range r.decorators {
		if err := dec.Decorate(&form); err != nil {
			return model.FormModel{}, errors.Wrap(err, "crud: decorate form")
		}
	}

	return form, nil
}

func (r *Resource) populateRelations(form *model.FormModel) error {
	for i := range form.Fields {
		field := &form.Fields[i]
		rel := field.Relationship
		if rel == nil || len(field.Options) != 0 {
			continue
		}
		if r.lookup == nil {
			continue
		}

		target, ok := r.lookup.ByTable(rel.Target)
		if !ok {
			log.Warnf("no mapped entity for relation target %q, leaving %s empty", rel.Target, field.Name)
			continue
		}

		options, err := r.relationOptions(target)
		if err != nil {
			return err
		}
		field.Options = options
	}

	return nil
}

func (r *Resource) relationOptions(target *orm.Entity) ([]model.Option, error) {
	rows, err := r.store.List(target, nil)
	if err != nil {
		return nil, err
	}

	options := make([]model.Option, 0, len(rows))
	for _, row := range rows {
		options = append(options, model.Option{
			Value: formatCell(row[target.PrimaryKey.DBName]),
			Label: rowLabel(target, row),
		})
	}

	return options, nil
}

// rowLabel names a row for humans: the label column's value when present,
// otherwise "<Entity> #<pk>".
func rowLabel(entity *orm.Entity, row Row) string {
	if entity.LabelColumn != "" {
		if v, ok := row[entity.LabelColumn]; ok && v != nil {
			if s := formatCell(v); s != "" {
				return s
			}
		}
	}
	return entity.PrettyName() + " #" + formatCell(row[entity.PrimaryKey.DBName])
}

func (r *Resource) warnUnknownDefaults(defaults map[string]any) {
	for name := range defaults {
		if _, ok := r.entity.Column(name); !ok {
			log.Warnf("default %q matches no column of %s", name, r.entity.Table)
		}
	}
}
