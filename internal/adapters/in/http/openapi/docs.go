package openapi

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/swaggo/swag"
)

var registerOnce sync.Once

// RegisterDocs publishes the contract as JSON to the swag registry, where the
// swagger UI handler picks it up as doc.json.
func RegisterDocs(ctx context.Context) error {
	doc, err := Load(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	registerOnce.Do(func() {
		info := &swag.Spec{
			Version:          doc.Info.Version,
			Title:            doc.Info.Title,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(raw),
			LeftDelim:        "{{",
			RightDelim:       "}}",
		}
		swag.Register(info.InstanceName(), info)
	})
	return nil
}
