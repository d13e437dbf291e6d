package main

import (
	"fmt"
	"time"

	"github.com/dukerupert/carecircle/internal/puzzle"
)

type PuzzleCmd struct {
	Date    string `help:"Day to print (YYYY-MM-DD). Defaults to today."`
	Locale  string `help:"Locale used to pick the word bank." default:"en"`
	Size    int    `help:"Number of words." default:"5"`
	Answers bool   `help:"Mark the correct option."`
}

func (c *PuzzleCmd) Run() error {
	date := c.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	fmt.Printf("Puzzle for %s (%s)\n", date, puzzle.Language(c.Locale))
	for i, item := range puzzle.Today(date, c.Locale, c.Size) {
		fmt.Printf("%d. %s\n", i+1, item.Word)
		for j, opt := range item.Options {
			mark := " "
			if c.Answers && j == item.CorrectIndex {
				mark = "*"
			}
			fmt.Printf("   %s %c) %s\n", mark, 'a'+j, opt)
		}
	}
	return nil
}
