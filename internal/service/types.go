package service

import "encoding/json"

// CommandRequest asks for an arbitrary shell command to be run.
type CommandRequest struct {
	// Command is interpreted by the shell.
	Command string `json:"command"`

	// Timeout in seconds. Nil applies the configured default.
	Timeout *int `json:"timeout,omitempty"`

	// WorkingDirectory is used as the child's cwd. Nil inherits the
	// service's current directory.
	WorkingDirectory *string `json:"workingDirectory,omitempty"`
}

// UnmarshalJSON also accepts working_directory; workingDirectory wins when
// both are present.
func (r *CommandRequest) UnmarshalJSON(data []byte) error {
	type plain CommandRequest
	var aux struct {
		plain
		WorkingDirectorySnake *string `json:"working_directory"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = CommandRequest(aux.plain)
	if r.WorkingDirectory == nil {
		r.WorkingDirectory = aux.WorkingDirectorySnake
	}
	return nil
}

// PlanRequest asks for the planning command to be run.
type PlanRequest struct {
	// ProjectPath is used as the child's cwd. Nil inherits the service's
	// current directory.
	ProjectPath *string `json:"projectPath,omitempty"`

	// Timeout in seconds. Nil applies the configured default; 0 disables
	// the timeout.
	Timeout *int `json:"timeout,omitempty"`
}

// UnmarshalJSON also accepts project_path; projectPath wins when both are
// present.
func (r *PlanRequest) UnmarshalJSON(data []byte) error {
	type plain PlanRequest
	var aux struct {
		plain
		ProjectPathSnake *string `json:"project_path"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = PlanRequest(aux.plain)
	if r.ProjectPath == nil {
		r.ProjectPath = aux.ProjectPathSnake
	}
	return nil
}

// CommandResult is returned by both operations.
type CommandResult struct {
	// Command is what was actually run.
	Command    string `json:"command"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ReturnCode int    `json:"returnCode"`
	// Success is always ReturnCode == 0.
	Success bool `json:"success"`
}

func newCommandResult(command, stdout, stderr string, returnCode int) *CommandResult {
	return &CommandResult{
		Command:    command,
		Stdout:     stdout,
		Stderr:     stderr,
		ReturnCode: returnCode,
		Success:    returnCode == 0,
	}
}
