package main

import (
	"fmt"
	"strings"

	"rezonans/internal/domain"
)

func printTaskLine(t domain.Task) {
	label := t.URL
	if label == "" && t.Analysis != nil {
		label = t.Analysis.Summary
	}
	label = truncate(label, 72)
	liked := " "
	if t.Liked {
		liked = "*"
	}
	fmt.Printf("%-36s  %-10s  %s %s\n", t.ID, t.Status, liked, label)
}

func printTask(t domain.Task) {
	fmt.Printf("Plan %s\n", t.ID)
	fmt.Printf("  Status:  %s\n", t.Status)
	fmt.Printf("  Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	if t.URL != "" {
		fmt.Printf("  Source:  %s\n", t.URL)
	}
	if t.Liked {
		fmt.Println("  Liked:   yes")
	}
	if t.Error != "" {
		fmt.Printf("  Error:   %s\n", t.Error)
	}
	if t.Analysis != nil {
		printAnalysis(t.Analysis)
	}
	for _, p := range t.Posts {
		printPost(p)
	}
}

func printAnalysis(a *domain.Analysis) {
	fmt.Println("\nAnalysis")
	fmt.Printf("  Summary:   %s\n", a.Summary)
	fmt.Printf("  Sentiment: %s (%s)\n", a.Sentiment, domain.ClassifySentiment(a.Sentiment))
	fmt.Printf("  Verdict:   %s (%s)\n", a.PRVerdict, domain.ClassifyVerdict(a.PRVerdict))
	fmt.Printf("  Relevance: %d", a.RelevanceScore)
	if a.WorthReacting() {
		fmt.Print("  <- worth reacting")
	}
	fmt.Println()
	if len(a.Topics) > 0 {
		fmt.Printf("  Topics:    %s\n", strings.Join(a.Topics, ", "))
	}
	if a.Category != "" {
		fmt.Printf("  Category:  %s\n", a.Category)
	}
	for _, f := range a.Facts {
		fmt.Printf("  - %s\n", f)
	}
	if a.PRReasoning != "" {
		fmt.Printf("  Reasoning: %s\n", a.PRReasoning)
	}
}

func printPost(p domain.Post) {
	fmt.Printf("\n[%s]", p.Platform)
	if p.PostStatus != "" {
		fmt.Printf(" (%s)", p.PostStatus)
	}
	fmt.Println()
	if p.Content != "" {
		fmt.Println(p.Content)
	}
	if p.ImageURL != "" {
		fmt.Printf("Image: %s\n", p.ImageURL)
	}
}

// truncate shortens display text to max runes. Summaries and snippets are
// mostly Russian, so cutting at byte offsets would split multi-byte runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func printScanResults(results []domain.ScanResult) {
	if len(results) == 0 {
		fmt.Println("No candidates found.")
		return
	}
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		fmt.Printf("%2d. %s\n", i+1, title)
		if r.Title != "" {
			fmt.Printf("    %s\n", r.URL)
		}
		if r.Text != "" {
			fmt.Printf("    %s\n", truncate(r.Text, 160))
		}
	}
}
