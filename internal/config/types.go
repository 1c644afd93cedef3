package config

type Dataset struct {
	Repo     string `yaml:"repo,omitempty"`
	Revision string `yaml:"revision,omitempty"`
	// LocalDir, when set, reads category files from disk instead of the Hub.
	LocalDir string `yaml:"local_dir,omitempty"`
	Pattern  string `yaml:"pattern,omitempty"`
}

type LLM struct {
	Provider    string  `yaml:"provider,omitempty"`
	Model       string  `yaml:"model,omitempty"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
}

type Config struct {
	Dataset    Dataset  `yaml:"dataset"`
	Categories []string `yaml:"categories,omitempty"`
	Workers    int      `yaml:"workers,omitempty"`
	Tokenizer  string   `yaml:"tokenizer,omitempty"`
	EvalSize   int      `yaml:"eval_size,omitempty"`
	LLM        LLM      `yaml:"llm"`
}
