package config

var Presets = map[string]*Config{
	"quick": {
		Atoms: 8, Configs: 20, Cell: 8.0, Temperature: 20.0,
		Sigma: 0.2, Kernel: "auto", DataDir: DefaultDataDir,
	},
	"liquid": {
		Atoms: 64, Configs: 200, Cell: 14.0, Temperature: 4.2,
		Sigma: 0.35, Kernel: "auto", DataDir: DefaultDataDir,
	},
	"solid": {
		Atoms: 32, Configs: 500, Cell: 11.0, Temperature: 1.0,
		Sigma: 0.15, Kernel: "auto", DataDir: DefaultDataDir,
	},
	"bench": {
		Atoms: 128, Configs: 1000, Cell: 18.0, Temperature: 40.0,
		Sigma: 0.25, Kernel: "auto", DataDir: DefaultDataDir,
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
