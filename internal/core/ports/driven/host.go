package driven

// Host bundles every data-access port a host backend provides.
// The sqlite and memory adapters both satisfy it.
type Host interface {
	MetaStore
	RecordStore
	RowStore
	ExtensionProbe
	CartStore
	DatasetImporter

	CustomerStore() CustomerStore
	OrderStore() OrderStore
	AdjustmentStore() AdjustmentStore
	NoteStore() NoteStore
	LogStore() LogStore
	DownloadStore() DownloadStore
}
