package wizard

import (
	"context"
	"strings"
)

var (
	yesAnswers = []string{"y", "Y", "yes", "Yes", "YES"}
	noAnswers  = []string{"n", "N", "no", "No", "NO"}
)

// Confirm displays a yes/no prompt. Pressing Enter picks the default.
func (it *Prompter) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	defaults := "n"
	if defaultYes {
		defaults = "y"
	}

	validator := it.memberValidation(append(append([]string{}, yesAnswers...), noAnswers...), "Please answer 'y' or 'n'.")

	response, err := it.Ask(ctx, question, defaults, validator)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(response[:1], "y"), nil
}

// ChooseEach asks one confirmation per name, each defaulting to yes, and
// returns the answers in the same order.
func (it *Prompter) ChooseEach(ctx context.Context, names []string) ([]bool, error) {
	answers := make([]bool, len(names))
	for index, name := range names {
		answer, err := it.Confirm(ctx, name, true)
		if err != nil {
			return nil, err
		}
		answers[index] = answer
	}
	return answers, nil
}
