package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"organizer/backend/internal/untis"
)

type inspectResult struct {
	Created         string               `json:"created"`
	School          string               `json:"school,omitempty"`
	SchoolYearBegin string               `json:"school_year_begin"`
	SchoolYearEnd   string               `json:"school_year_end"`
	TermBegin       string               `json:"term_begin"`
	TermEnd         string               `json:"term_end"`
	Sections        []untis.SectionCount `json:"sections"`
	Units           int                  `json:"units"`
}

// newInspectCmd 只解析文件，不连接数据库
func newInspectCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "解析 Untis XML 并输出概要",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			doc, err := parseFile(file)
			if err != nil {
				return err
			}

			units := map[string]struct{}{}
			for _, l := range doc.Lessons {
				units[untis.UnitCode(l.Code)] = struct{}{}
			}

			return writeJSON(cmd.OutOrStdout(), commandOutput{
				Command:    "inspect",
				DurationMS: time.Since(start).Milliseconds(),
				Result: inspectResult{
					Created:         doc.Date + " " + doc.Time,
					School:          doc.General.SchoolName,
					SchoolYearBegin: doc.General.SchoolYearBegin,
					SchoolYearEnd:   doc.General.SchoolYearEnd,
					TermBegin:       doc.General.TermBegin,
					TermEnd:         doc.General.TermEnd,
					Sections:        doc.Sections(),
					Units:           len(units),
				},
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Untis XML 文件 (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func parseFile(path string) (*untis.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()
	return untis.Parse(f)
}
