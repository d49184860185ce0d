package crud

import (
	"net/url"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/goliatone/go-crudform/pkg/render"
)

// Create decodes a submitted create form and persists the record. Defaults
// are merged over the decoded values after validation, matching the form
// that excluded them from rendering. Field errors come back keyed by field
// name; the record is only written when there are none.
func (r *Resource) Create(values url.Values, defaults map[string]any) (map[string][]string, error) {
	form, err := r.CreateForm(defaults)
	if err != nil {
		return nil, err
	}

	record, fieldErrs := render.Decode(form, values)
	if len(fieldErrs) != 0 {
		return fieldErrs, nil
	}

	for name, value := range defaults {
		if _, ok := r.entity.Column(name); ok {
			record[name] = value
		}
	}

	if err := r.store.Create(r.entity, record); err != nil {
		log.Errorf("add %s: %v", r.entity.PrettyName(), err)
		return nil, err
	}

	log.Infof("%s added", r.entity.PrettyName())
	return nil, nil
}

// Update decodes a submitted update form and writes the changed columns.
func (r *Resource) Update(key string, values url.Values, except []string) (map[string][]string, error) {
	pk, err := r.parseKey(key)
	if err != nil {
		return nil, err
	}

	form, err := r.UpdateForm(key, except)
	if err != nil {
		return nil, err
	}

	record, fieldErrs := render.Decode(form, values)
	if len(fieldErrs) != 0 {
		return fieldErrs, nil
	}

	if len(record) == 0 {
		return nil, errors.Errorf("crud: update %s: nothing to update", r.entity.Table)
	}

	if err := r.store.Update(r.entity, pk, record); err != nil {
		log.Errorf("update %s: %v", r.entity.PrettyName(), err)
		return nil, err
	}

	log.Infof("%s updated", r.entity.PrettyName())
	return nil, nil
}

// Delete removes the row addressed by key.
func (r *Resource) Delete(key string) error {
	pk, err := r.parseKey(key)
	if err != nil {
		return err
	}

	if err := r.store.Delete(r.entity, pk); err != nil {
		log.Errorf("delete %s: %v", r.entity.PrettyName(), err)
		return err
	}

	log.Infof("%s deleted", r.entity.PrettyName())
	return nil
}

// DeleteSubmitted handles the confirmation form built by DeleteForm,
// reading the selected primary key from the submitted values.
func (r *Resource) DeleteSubmitted(values url.Values) error {
	key := values.Get(r.entity.PrimaryKey.DBName)
	if key == "" {
		return errors.Errorf("crud: delete %s: no record selected", r.entity.Table)
	}
	return r.Delete(key)
}
