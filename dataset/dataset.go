// Package dataset converts the hieroglyph corpus between its JSON form
// and the paired source/target text files the trainer consumes.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
)

// Language type keys accepted by the conversion commands
const (
	TypeHieroglyphs     = "egy"
	TypeTransliteration = "tnt"
	TypeEnglish         = "en"
	TypeGerman          = "de"
	TypeLKey            = "lkey"
	TypeWordClass       = "wordClass"
)

// Metadata mirrors the corpus metadata block; untouched by conversion
type Metadata struct {
	SourceLang  string `json:"source_lang"`
	TargetLang  string `json:"target_lang"`
	IDDatapoint string `json:"id_datapoint"`
	IDSentence  string `json:"id_sentence"`
	Language    string `json:"language"`
	Date        string `json:"date"`
	Script      string `json:"script"`
	IDTree      string `json:"id_tree"`
}

// Entry is one corpus datapoint. Fields a conversion does not fill stay
// empty strings so the JSON skeleton is stable.
type Entry struct {
	Source          string   `json:"source"`
	Transliteration string   `json:"transliteration"`
	Target          string   `json:"target"`
	LKey            string   `json:"lKey"`
	WordClass       string   `json:"wordClass"`
	FlexCode        string   `json:"flexCode"`
	Metadata        Metadata `json:"metadata"`
}

// Stats summarizes a JSON -> text conversion
type Stats struct {
	Total     int
	Processed int
	Skipped   int
}

var fieldMapping = map[string]string{
	TypeHieroglyphs:     "source",
	TypeTransliteration: "transliteration",
	TypeEnglish:         "target",
	TypeGerman:          "target",
	TypeLKey:            "lKey",
	TypeWordClass:       "wordClass",
}

// translations carry a metadata language tag to filter on
var langFilter = map[string]string{
	TypeEnglish: "en",
	TypeGerman:  "de",
}

func fieldFor(langType string) (string, error) {
	if field, ok := fieldMapping[langType]; ok {
		return field, nil
	}
	return "", errors.New("unknown language type: " + langType)
}

func (e *Entry) get(field string) string {
	switch field {
	case "source":
		return e.Source
	case "transliteration":
		return e.Transliteration
	case "target":
		return e.Target
	case "lKey":
		return e.LKey
	case "wordClass":
		return e.WordClass
	}
	return ""
}

func (e *Entry) set(field, value string) {
	switch field {
	case "source":
		e.Source = value
	case "transliteration":
		e.Transliteration = value
	case "target":
		e.Target = value
	case "lKey":
		e.LKey = value
	case "wordClass":
		e.WordClass = value
	}
}

// CleanText normalizes corpus text: trims and collapses runs of
// whitespace to single spaces
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SeparateLine applies the character-separation transform used for
// transliteration data: word spaces become underscores, then every
// character is space-separated
func SeparateLine(line string) string {
	line = strings.ReplaceAll(line, " ", "_")
	runes := strings.Split(line, "")
	return strings.Join(runes, " ")
}

// FormatText prepares cleaned text for the trainer. Hieroglyph codes are
// already space-separated; transliteration gets character separation;
// everything else passes through trimmed.
func FormatText(text, langType string) string {
	switch langType {
	case TypeHieroglyphs:
		return strings.TrimSpace(text)
	case TypeTransliteration:
		return SeparateLine(strings.TrimSpace(text))
	default:
		return strings.TrimSpace(text)
	}
}

// UnformatText reverses FormatText for the text -> JSON direction
func UnformatText(text, langType string) string {
	switch langType {
	case TypeTransliteration:
		text = strings.ReplaceAll(strings.TrimSpace(text), " ", "")
		text = strings.ReplaceAll(text, "_", " ")
		return strings.TrimSpace(text)
	default:
		return strings.TrimSpace(text)
	}
}

// ConvertJSONToText converts a JSON corpus file into paired source and
// target text files next to the input. Entries missing either side, or
// whose metadata target language does not match a requested translation
// target, are skipped to keep the two files aligned.
func ConvertJSONToText(jsonPath, source, target string) (string, string, Stats, error) {
	sourceField, err := fieldFor(source)
	if err != nil {
		return "", "", Stats{}, err
	}
	targetField, err := fieldFor(target)
	if err != nil {
		return "", "", Stats{}, err
	}

	bytes, err := ioutil.ReadFile(jsonPath)
	if err != nil {
		return "", "", Stats{}, err
	}
	var data []Entry
	if err := json.Unmarshal(bytes, &data); err != nil {
		return "", "", Stats{}, errors.New("cannot decode corpus: " + err.Error())
	}

	var sourceLines, targetLines []string
	skipped := 0
	for i := range data {
		entry := &data[i]
		sourceText := entry.get(sourceField)
		targetText := entry.get(targetField)
		if len(sourceText) == 0 || len(targetText) == 0 {
			skipped++
			continue
		}
		if lang, ok := langFilter[target]; ok {
			if entry.Metadata.TargetLang != lang {
				skipped++
				continue
			}
		}
		sourceFormatted := FormatText(CleanText(sourceText), source)
		targetFormatted := FormatText(CleanText(targetText), target)
		if len(sourceFormatted) == 0 || len(targetFormatted) == 0 {
			skipped++
			continue
		}
		sourceLines = append(sourceLines, sourceFormatted)
		targetLines = append(targetLines, targetFormatted)
	}

	outputDir := filepath.Dir(jsonPath)
	sourcePath := filepath.Join(outputDir,
		fmt.Sprintf("source_%s2%s_cleaned.txt", source, target))
	targetPath := filepath.Join(outputDir,
		fmt.Sprintf("target_%s2%s_cleaned.txt", source, target))

	if err := ioutil.WriteFile(sourcePath,
		[]byte(strings.Join(sourceLines, "\n")), 0644); err != nil {
		return "", "", Stats{}, err
	}
	if err := ioutil.WriteFile(targetPath,
		[]byte(strings.Join(targetLines, "\n")), 0644); err != nil {
		return "", "", Stats{}, err
	}

	stats := Stats{
		Total:     len(data),
		Processed: len(sourceLines),
		Skipped:   skipped,
	}
	return sourcePath, targetPath, stats, nil
}

func readLines(filename string) ([]string, error) {
	bytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(bytes), "\n")
	// drop a trailing newline, not interior blank lines
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// ConvertTextToJSON converts paired text files back into the JSON corpus
// skeleton. The files must have the same number of lines.
func ConvertTextToJSON(sourcePath, targetPath, source, target, outputPath string) (int, error) {
	sourceField, err := fieldFor(source)
	if err != nil {
		return 0, err
	}
	targetField, err := fieldFor(target)
	if err != nil {
		return 0, err
	}

	sourceLines, err := readLines(sourcePath)
	if err != nil {
		return 0, err
	}
	targetLines, err := readLines(targetPath)
	if err != nil {
		return 0, err
	}
	if len(sourceLines) != len(targetLines) {
		return 0, fmt.Errorf("line count mismatch: source has %d, target has %d",
			len(sourceLines), len(targetLines))
	}

	data := make([]Entry, len(sourceLines))
	for i := range sourceLines {
		data[i].set(sourceField, UnformatText(sourceLines[i], source))
		data[i].set(targetField, UnformatText(targetLines[i], target))
	}

	bytes, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return 0, err
	}
	if err := ioutil.WriteFile(outputPath, bytes, 0644); err != nil {
		return 0, err
	}
	return len(data), nil
}

// SeparateFile applies SeparateLine to every line of the input file and
// writes the result next to it as <name>_separated_cleaned.txt
func SeparateFile(inputPath string) (string, int, error) {
	lines, err := readLines(inputPath)
	if err != nil {
		return "", 0, err
	}
	processed := make([]string, len(lines))
	for i, line := range lines {
		processed[i] = SeparateLine(line)
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(filepath.Dir(inputPath), base+"_separated_cleaned.txt")
	if err := ioutil.WriteFile(outputPath,
		[]byte(strings.Join(processed, "\n")+"\n"), 0644); err != nil {
		return "", 0, err
	}
	return outputPath, len(processed), nil
}
