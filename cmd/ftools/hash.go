// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"ftools-cli/internal/hashing"

	"github.com/spf13/cobra"
)

var (
	hashAlgorithm string
	hashVerify    string
	hashFormat    string

	hashCmd = &cobra.Command{
		Use:   "hash <file>...",
		Short: "Calculate file hashes (SHA256, SHA512, MD5)",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHash,
	}
)

func init() {
	f := hashCmd.Flags()
	f.StringVarP(&hashAlgorithm, "algorithm", "a", "sha256", "hash algorithm: sha256, sha512, md5")
	f.StringVar(&hashVerify, "verify", "", "verify against an expected hash (single file only)")
	f.StringVarP(&hashFormat, "format", "f", "text", "output format: text, json")
}

// hashResult is the JSON export shape for one hashed file.
type hashResult struct {
	File      string `json:"file"`
	Algorithm string `json:"algorithm"`
	Hash      string `json:"hash"`
}

func runHash(cmd *cobra.Command, args []string) error {
	alg, err := hashing.ParseAlgorithm(hashAlgorithm)
	if err != nil {
		return err
	}

	type fileDigest struct {
		file   string
		digest string
		err    error
	}
	results := make([]fileDigest, 0, len(args))
	for _, file := range args {
		digest, err := hashing.SumFile(file, alg)
		results = append(results, fileDigest{file: file, digest: digest, err: err})
	}

	// Verify mode: compare a single digest against the expected value.
	// Either side may be a prefix of the other, so a truncated hash copied
	// from another tool's output still verifies.
	if hashVerify != "" {
		if len(args) != 1 {
			return fmt.Errorf("--verify can only be used with a single file")
		}
		r := results[0]
		if r.err != nil {
			return r.err
		}

		expected := strings.ToLower(strings.TrimSpace(hashVerify))
		actual := r.digest
		if actual == expected || strings.HasPrefix(actual, expected) || strings.HasPrefix(expected, actual) {
			fmt.Printf("%s %s %s\n",
				SuccessStyle.Bold(true).Render("["+glyphCheck+"]"),
				SuccessStyle.Bold(true).Render(r.file),
				SuccessStyle.Bold(true).Render("MATCH"))
			return nil
		}
		fmt.Printf("%s %s %s\n",
			ErrorStyle.Render("["+glyphCross+"]"),
			ErrorStyle.Render(r.file),
			ErrorStyle.Render("MISMATCH"))
		printKV("Expected", expected)
		printKV("Actual", ErrorStyle.Render(actual))
		return fmt.Errorf("hash verification failed")
	}

	if hashFormat == "json" {
		out := make([]hashResult, 0, len(results))
		for _, r := range results {
			if r.err != nil {
				continue
			}
			out = append(out, hashResult{File: r.file, Algorithm: alg.String(), Hash: r.digest})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s File Hashes (%s)\n",
		CmdStyle.Render(glyphBullet),
		WarningStyle.Render(strings.ToUpper(alg.String())))
	printRule(80)

	for _, r := range results {
		if r.err != nil {
			printError(fmt.Sprintf("%s (%v)", r.file, r.err))
			continue
		}
		fmt.Println(SuccessStyle.Render(r.digest))
		fmt.Printf("  %s\n", SubtitleStyle.Render("└ "+r.file))
	}

	return nil
}
