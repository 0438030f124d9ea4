package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Manifest represents the parts of package.json pn cares about.
type Manifest struct {
	Name    string  `json:"name"`
	Version string  `json:"version"`
	Scripts Scripts `json:"scripts"`
}

// Scripts maps script names to shell commands, in file order.
type Scripts struct {
	names    []string
	commands map[string]string
}

// NewScripts builds Scripts from name/command pairs.
func NewScripts(pairs ...[2]string) Scripts {
	var s Scripts
	for _, p := range pairs {
		s.set(p[0], p[1])
	}
	return s
}

// Get returns the command of the named script. Names match exactly.
func (s Scripts) Get(name string) (string, bool) {
	cmd, ok := s.commands[name]
	return cmd, ok
}

// Len returns the number of scripts.
func (s Scripts) Len() int { return len(s.names) }

// Names returns the script names in file order.
func (s Scripts) Names() []string {
	return append([]string(nil), s.names...)
}

// All iterates over name/command pairs in file order.
func (s Scripts) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range s.names {
			if !yield(name, s.commands[name]) {
				return
			}
		}
	}
}

// A repeated key keeps its first position and its last command.
func (s *Scripts) set(name, command string) {
	if s.commands == nil {
		s.commands = make(map[string]string)
	}
	if _, ok := s.commands[name]; !ok {
		s.names = append(s.names, name)
	}
	s.commands[name] = command
}

// UnmarshalJSON decodes a JSON object of strings, keeping key order.
func (s *Scripts) UnmarshalJSON(data []byte) error {
	*s = Scripts{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("scripts must be an object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var command string
		if err := dec.Decode(&command); err != nil {
			// Not wrapped: the decoder's offset is relative to this object.
			return fmt.Errorf("scripts.%s: %v", name, err)
		}
		s.set(name, command)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the scripts as a JSON object in file order.
func (s Scripts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.commands[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
