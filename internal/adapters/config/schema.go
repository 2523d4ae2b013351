package config

// Defaults is the structure of the YAML file given with --config. Every field is
// optional; unset fields leave the built-in default in place.
type Defaults struct {
	SourceMap       *string `yaml:"sourceMap"`
	InputSourceMap  *string `yaml:"inputSourceMap"`
	Usage           *string `yaml:"usage"`
	DeclarationList *bool   `yaml:"declarationList"`
	Restructure     *bool   `yaml:"restructure"`
	ForceMediaMerge *bool   `yaml:"forceMediaMerge"`
	Comments        *string `yaml:"comments"`
	Stat            *bool   `yaml:"stat"`
	Debug           *int    `yaml:"debug"`
	Engine          *string `yaml:"engine"`
}
