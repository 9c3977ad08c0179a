package main

import (
	"fmt"
	"os"

	"github.com/jonathan/jobfit/internal/schemas"
	"github.com/jonathan/jobfit/internal/types"
	jsonschemas "github.com/jonathan/jobfit/schemas"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run the verification gate on a resume, cover letter or outreach message",
	RunE:  runVerify,
}

var (
	verifyType     string
	verifyResume   string
	verifyLetter   string
	verifyTier     string
	verifyCompany  string
	verifyTitle    string
	verifyFailExit bool
)

func init() {
	f := verifyCmd.Flags()
	f.StringVarP(&verifyType, "type", "t", string(types.DocumentResume), "document type: resume, cover_letter or outreach")
	f.StringVar(&verifyResume, "resume", "", "resume JSON file")
	f.StringVar(&verifyLetter, "letter-file", "", "cover letter or outreach text file")
	f.StringVar(&verifyTier, "tier", "", "outreach tier: tier_1, tier_2 or tier_3")
	f.StringVar(&verifyCompany, "company", "", "company the letter is written for")
	f.StringVar(&verifyTitle, "title", "", "role title the letter is written for")
	f.BoolVar(&verifyFailExit, "strict", false, "exit non-zero when the document fails")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	req := types.VerifyRequest{DocumentType: types.DocumentType(verifyType)}

	if req.DocumentType == types.DocumentResume {
		if verifyResume == "" {
			return fmt.Errorf("--resume is required for resume verification")
		}
		raw, err := os.ReadFile(verifyResume)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", verifyResume, err)
		}
		if err := schemas.Validate(jsonschemas.Resume, raw); err != nil {
			return err
		}
		req.Resume = &types.ResumeDocument{}
		if err := readJSON(verifyResume, req.Resume); err != nil {
			return err
		}
	} else {
		text, err := readText("", verifyLetter, "letter")
		if err != nil {
			return err
		}
		req.Letter = &types.LetterDocument{Text: text, Tier: verifyTier}
		if verifyCompany != "" || verifyTitle != "" {
			req.Letter.Job = &types.JobContext{Company: verifyCompany, Title: verifyTitle}
		}
	}

	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	report, err := rt.engine.Verify(cmd.Context(), req)
	if err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		p.PrintVerification(report)
	}
	if err := writeJSON(cmd, report); err != nil {
		return err
	}
	if verifyFailExit && report.OverallStatus == types.StatusFailed {
		return fmt.Errorf("%s failed verification", report.DocumentType)
	}
	return nil
}
