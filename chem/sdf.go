// Package chem reads the chemical structure file formats the loaders dispatch
// to: MDL SD files and SMILES line notation. Structures are carried as opaque
// text; nothing here interprets atoms, bonds or coordinates.
package chem

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prop is one data item of an SD record, in file order.
type Prop struct {
	Name  string
	Value string
}

// Record is one molecule entry of an SD file: the title line, the raw
// molblock text (through "M  END", inclusive) and the trailing data items.
type Record struct {
	Title    string
	Molblock string
	Props    []Prop
}

// Prop returns the value of the named data item.
func (r Record) Prop(name string) (string, bool) {
	for _, p := range r.Props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// ReadSDF parses an SD file: records separated by "$$$$", each consisting of
// a molblock followed by "> <tag>" data items whose values run until a blank
// line. Property order is preserved per record. Framing damage (a record
// without "M  END", a data item without a tag) is an error carrying the line
// number.
func ReadSDF(r io.Reader) ([]Record, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	var records []Record
	i := 0
	for i < len(lines) {
		record, next, err := readRecord(lines, i)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
		i = next
	}
	return records, nil
}

func readRecord(lines []string, start int) (Record, int, error) {
	end := -1
	for j := start; j < len(lines); j++ {
		if isRecordDelim(lines[j]) {
			return Record{}, 0, fmt.Errorf("line %d: record starting at line %d has no %q", j+1, start+1, "M  END")
		}
		if strings.TrimSpace(lines[j]) == "M  END" {
			end = j
			break
		}
	}
	if end < 0 {
		return Record{}, 0, fmt.Errorf("record starting at line %d has no %q", start+1, "M  END")
	}

	record := Record{
		Title:    lines[start],
		Molblock: strings.Join(lines[start:end+1], "\n"),
	}

	i := end + 1
	for i < len(lines) {
		line := lines[i]
		if isRecordDelim(line) {
			i++
			return record, i, nil
		}
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		if !strings.HasPrefix(line, ">") {
			return Record{}, 0, fmt.Errorf("line %d: unexpected text %q between data items", i+1, line)
		}
		name, err := dataItemTag(line, i+1)
		if err != nil {
			return Record{}, 0, err
		}
		i++
		var value []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" && !isRecordDelim(lines[i]) {
			value = append(value, lines[i])
			i++
		}
		record.Props = append(record.Props, Prop{Name: name, Value: strings.Join(value, "\n")})
	}
	return record, i, nil
}

func isRecordDelim(line string) bool {
	return strings.TrimSpace(line) == "$$$$"
}

func dataItemTag(line string, lineNumber int) (string, error) {
	open := strings.Index(line, "<")
	if open < 0 {
		return "", fmt.Errorf("line %d: data item header %q has no <tag>", lineNumber, line)
	}
	rest := line[open+1:]
	closing := strings.Index(rest, ">")
	if closing < 0 {
		return "", fmt.Errorf("line %d: data item header %q has no <tag>", lineNumber, line)
	}
	name := rest[:closing]
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("line %d: data item header %q has an empty tag", lineNumber, line)
	}
	return name, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}
