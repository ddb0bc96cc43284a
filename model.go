package prophetutils

import "github.com/Hey-Savvie/prophet-utils/transform"

// Model is the serializeable format of a fitted pipeline composing of the
// pipeline options and the fitted transform parameters. The forecasting
// model's own state is opaque to the pipeline and is persisted, if at all, by
// the collaborator.
type Model struct {
	Options   *Options        `json:"options"`
	Transform transform.Model `json:"transform_model"`
}
