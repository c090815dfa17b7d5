package installer

// InstallState accumulates the environment variables the wizard collects.
// Keys starting with an underscore are intermediate and never written out.
type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) Provider() string {
	return s.EnvVars["LLM_PROVIDER"]
}
