package domain

// MetaEntry is one row of an entity metadata table.
type MetaEntry struct {
	Entity EntityType `yaml:"entity"`
	ID     int64      `yaml:"id"`
	Key    string     `yaml:"key"`
	Value  string     `yaml:"value"`
}

// Dataset is a bulk snapshot of host data, used to seed a store.
type Dataset struct {
	Customers     []Customer   `yaml:"customers"`
	Orders        []Order      `yaml:"orders"`
	Adjustments   []Adjustment `yaml:"adjustments"`
	Notes         []Note       `yaml:"notes"`
	Logs          []Log        `yaml:"logs"`
	Downloads     []Download   `yaml:"downloads"`
	Meta          []MetaEntry  `yaml:"meta"`
	ActivePlugins []string     `yaml:"active_plugins"`
	Cart          []CartItem   `yaml:"cart"`
}
