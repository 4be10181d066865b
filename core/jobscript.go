package core

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	flag "github.com/juju/gnuflag"
)

// Directive marker for batch scheduler metadata lines
const DirectivePrefix = "PBS"

// Data for an HPC job script
/*
#!/bin/bash
#PBS -N train_hiero
#PBS -l walltime=24:00:00
cd ${PBS_O_WORKDIR}
*/
type JobScript struct {
	Shell string `json:"hpc_shell"`
	// Args parsed from PBS directive lines
	Args   []string `json:"hpc_args"`
	Script []byte   `json:"hpc_script"`
}

// ParseJobScript splits a batch script into its shell, the scheduler
// directive arguments, and the body. Directive lines must precede the
// body; once a non-directive line is seen the rest is body.
func ParseJobScript(filename string) (JobScript, error) {
	file, err := os.Open(filename)
	if err != nil {
		return JobScript{}, err
	}
	defer file.Close()
	return parseJobScript(file)
}

func parseJobScript(r io.Reader) (JobScript, error) {
	shell := "/bin/sh"
	var args []string
	var script []byte

	marker := "#" + DirectivePrefix
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "#!") {
			shell = line[2:]
		} else if strings.HasPrefix(line, marker) {
			args = append(args, strings.Fields(line[len(marker):])...)
		} else {
			script = append(script, line...)
			script = append(script, '\n')
		}
	}
	parsed := false
	for scanner.Scan() {
		line := scanner.Text()
		if !parsed && strings.HasPrefix(line, marker) {
			args = append(args, strings.Fields(line[len(marker):])...)
			continue
		}
		if !parsed && (len(strings.TrimSpace(line)) == 0 || strings.HasPrefix(line, "#")) {
			// comments and blank lines may sit between directives
			continue
		}
		parsed = true
		script = append(script, line...)
		script = append(script, '\n')
	}
	if err := scanner.Err(); err != nil {
		return JobScript{}, err
	}
	return JobScript{
		Shell:  shell,
		Args:   args,
		Script: script,
	}, nil
}

// resource list value for repeated -l flags
type listValue []string

func (l *listValue) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func (l *listValue) String() string {
	return strings.Join(*l, ",")
}

// DecodeDirectives interprets PBS directive arguments as a JobSpec.
// Unknown resource requests are discarded.
func DecodeDirectives(args []string) (JobSpec, error) {
	flags := flag.NewFlagSet(DirectivePrefix, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	name := flags.String("N", "", "job name")
	queue := flags.String("q", "", "target queue")
	join := flags.String("j", "", "join output and error streams")
	var resources listValue
	flags.Var(&resources, "l", "resource request")

	if err := flags.Parse(false, args); err != nil {
		return JobSpec{}, errors.New("cannot decode directives: " + err.Error())
	}

	spec := JobSpec{
		Name:       *name,
		Queue:      *queue,
		JoinOutput: *join == "oe",
	}
	for _, resource := range resources {
		for _, req := range strings.Split(resource, ",") {
			pair := strings.SplitN(req, "=", 2)
			if len(pair) != 2 {
				continue
			}
			switch pair[0] {
			case resourceWalltime:
				walltime, err := ParseWalltime(pair[1])
				if err != nil {
					return JobSpec{}, err
				}
				spec.Walltime = walltime
			case resourceSelect:
				sel, err := ParseSelect(pair[1])
				if err != nil {
					return JobSpec{}, err
				}
				spec.Select = sel
			}
		}
	}
	return spec, nil
}

// RenderJobScript produces the batch script for a profile: directives,
// environment activation, the working-directory changes, and the trainer
// invocation. Directive order is fixed so rendered scripts diff cleanly.
func RenderJobScript(p Profile) (string, error) {
	argv, err := p.TrainerCommand()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	directive := func(line string) {
		b.WriteString("#" + DirectivePrefix + " " + line + "\n")
	}
	if len(p.Job.Name) > 0 {
		directive("-N " + p.Job.Name)
	}
	if len(p.Job.Walltime) > 0 {
		if _, err := ParseWalltime(p.Job.Walltime); err != nil {
			return "", err
		}
		directive("-l walltime=" + p.Job.Walltime)
	}
	if len(p.Job.Queue) > 0 {
		directive("-q " + p.Job.Queue)
	}
	if p.Job.JoinOutput {
		directive("-j oe")
	}
	if p.Job.Select.Nodes > 0 {
		directive("-l select=" + p.Job.Select.String())
	}
	b.WriteString("\n")
	if len(p.Env.Init) > 0 {
		b.WriteString("source " + p.Env.Init + "\n")
	}
	if len(p.Env.Name) > 0 {
		b.WriteString("conda activate " + p.Env.Name + "\n")
	}
	b.WriteString("\ncd ${PBS_O_WORKDIR}\n")
	if len(p.Workdir) > 0 {
		b.WriteString("cd " + p.Workdir + "\n")
	}
	b.WriteString("\n" + strings.Join(argv, " ") + "\n")
	return b.String(), nil
}
