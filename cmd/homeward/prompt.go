package main

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/bamsammich/homeward/internal/resolve"
	"github.com/bamsammich/homeward/internal/scan"
	"github.com/bamsammich/homeward/internal/stddir"
)

// prompter asks the user the questions a restore can raise.
type prompter interface {
	Confirm(title, description string) (bool, error)
	ChooseMapping(d stddir.Dir, candidates []scan.Mapping) (scan.Mapping, error)
	ChooseStrategy(conflicts int) (strategy, error)
	ChooseDisposition(title, description string) (resolve.Disposition, error)
}

// huhPrompter asks on the terminal.
type huhPrompter struct{}

func (huhPrompter) Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

func (huhPrompter) ChooseMapping(d stddir.Dir, candidates []scan.Mapping) (scan.Mapping, error) {
	opts := make([]huh.Option[int], len(candidates))
	for i, c := range candidates {
		opts[i] = huh.NewOption(c.Src, i)
	}

	var idx int
	err := huh.NewSelect[int]().
		Title(fmt.Sprintf("Found %d %s folders. Which one should be restored?", len(candidates), d)).
		Description(fmt.Sprintf("It will be copied into %s", candidates[0].Dst)).
		Options(opts...).
		Value(&idx).
		Run()
	if err != nil {
		return scan.Mapping{}, err
	}
	return candidates[idx], nil
}

func (huhPrompter) ChooseStrategy(conflicts int) (strategy, error) {
	s := strategyLeave
	err := huh.NewSelect[strategy]().
		Title(fmt.Sprintf("%d files already existed. What should happen to them?", conflicts)).
		Options(
			huh.NewOption("Use the restored version for all (overwrite)", strategyAdoptAll),
			huh.NewOption("Keep the existing version for all", strategyKeepAll),
			huh.NewOption("Decide per folder", strategyPerFolder),
			huh.NewOption("Decide for each file", strategyIndividually),
			huh.NewOption("Leave both versions as they are", strategyLeave),
		).
		Value(&s).
		Run()
	return s, err
}

func (huhPrompter) ChooseDisposition(title, description string) (resolve.Disposition, error) {
	d := resolve.LeaveBoth
	err := huh.NewSelect[resolve.Disposition]().
		Title(title).
		Description(description).
		Options(
			huh.NewOption("Use the restored version", resolve.AdoptNew),
			huh.NewOption("Keep the existing version", resolve.KeepOriginal),
			huh.NewOption("Keep both", resolve.LeaveBoth),
		).
		Value(&d).
		Run()
	return d, err
}
