package sdk

import "fmt"

type Param struct {
	Name  string
	Value string
}

type WorkspaceBinding struct {
	Name      string
	ClaimName string
}

// PipelineRun describes a single start of a pipeline that is already
// defined on the platform.
type PipelineRun struct {
	Pipeline  string
	Params    []Param
	Workspace WorkspaceBinding
	ShowLog   bool
}

// Args returns the argument vector for the pipeline CLI, params in the
// order they were configured.
func (r PipelineRun) Args() []string {
	args := []string{"pipeline", "start", r.Pipeline}

	for _, p := range r.Params {
		args = append(args, "-p", fmt.Sprintf("%s=%s", p.Name, p.Value))
	}

	if r.Workspace.Name != "" {
		args = append(args, "-w", fmt.Sprintf("name=%s,claimName=%s", r.Workspace.Name, r.Workspace.ClaimName))
	}

	if r.ShowLog {
		args = append(args, "--showlog")
	}

	return args
}
