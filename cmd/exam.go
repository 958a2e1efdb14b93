package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsense/internal/exam"
	"github.com/abhisek/soulsense/internal/i18n"
	"github.com/abhisek/soulsense/internal/profile"
	"github.com/abhisek/soulsense/internal/questions"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Take an assessment without the TUI",
	Long: "Take an assessment without the TUI. With --answers the session runs " +
		"unattended; otherwise each question is prompted on stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		age, _ := cmd.Flags().GetString("age")
		answersFlag, _ := cmd.Flags().GetString("answers")
		reflection, _ := cmd.Flags().GetString("reflection")
		count, _ := cmd.Flags().GetInt("count")

		user, err := profile.New(name, age)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		if count <= 0 {
			count = d.settings.Load().QuestionCount
		}
		qs, err := d.bank.Load(ctx, user.Age, count)
		if err != nil {
			return err
		}

		sess := exam.NewSession(user, qs)
		if err := sess.Start(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if answersFlag != "" {
			answers, err := parseAnswers(answersFlag)
			if err != nil {
				return err
			}
			if len(answers) != len(qs) {
				return fmt.Errorf("got %d answers for %d questions", len(answers), len(qs))
			}
			for _, v := range answers {
				if err := sess.SubmitAnswer(v); err != nil {
					return err
				}
			}
		} else {
			in := bufio.NewScanner(cmd.InOrStdin())
			if err := promptAnswers(out, in, sess); err != nil {
				return err
			}
			if !cmd.Flags().Changed("reflection") {
				fmt.Fprintln(out, "\nDescribe a recent situation where you felt strong emotions (blank to skip):")
				if in.Scan() {
					reflection = in.Text()
				}
			}
		}

		return finishExam(ctx, out, d, sess, reflection)
	},
}

func init() {
	examCmd.Flags().StringP("name", "n", "", "Your name (required)")
	examCmd.Flags().StringP("age", "a", "", "Your age")
	examCmd.Flags().String("answers", "", "Comma-separated answers 1-4, one per question")
	examCmd.Flags().StringP("reflection", "r", "", "Reflection text")
	examCmd.Flags().Int("count", 0, "Number of questions (default from settings)")
	_ = examCmd.MarkFlagRequired("name")
}

func parseAnswers(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse answer %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// promptAnswers asks each question until the session awaits its
// reflection. "b" goes back one question.
func promptAnswers(out io.Writer, in *bufio.Scanner, sess *exam.Session) error {
	for sess.State() == exam.InProgress {
		q, err := sess.CurrentQuestion()
		if err != nil {
			return err
		}
		printQuestion(out, sess.Progress(), q)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			return fmt.Errorf("input ended before question %d", sess.Progress().Position())
		}
		line := strings.TrimSpace(in.Text())
		if line == "b" {
			if ok, _ := sess.GoBack(); !ok {
				fmt.Fprintln(out, "Already at the first question.")
			}
			continue
		}
		v, err := strconv.Atoi(line)
		if err == nil {
			err = sess.SubmitAnswer(v)
		}
		if err != nil {
			fmt.Fprintf(out, "Please answer %d-%d.\n", exam.MinAnswer, exam.MaxAnswer)
		}
	}
	return nil
}

func printQuestion(out io.Writer, p exam.Progress, q questions.Question) {
	fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", p.Position(), p.Total, q.Text)
	if q.Tooltip != "" {
		fmt.Fprintf(out, "  (%s)\n", q.Tooltip)
	}
	for _, o := range exam.Options {
		fmt.Fprintf(out, "  %d) %s\n", o.Value, o.Label)
	}
	fmt.Fprint(out, "> ")
}

func finishExam(ctx context.Context, out io.Writer, d *deps, sess *exam.Session, reflection string) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.LLM.Timeout+d.cfg.LLM.Retry.MaxWait)
	defer cancel()
	if err := sess.SubmitReflection(ctx, reflection, d.analyzer); err != nil {
		return err
	}
	if _, err := sess.Finish(ctx, d.store.ScoreRepo()); err != nil {
		return err
	}
	printResult(out, sess.Result())
	return nil
}

func printResult(out io.Writer, r exam.Result) {
	fmt.Fprintf(out, "\n%s: %d / %d (%.0f%%)\n", r.Username, r.Score, r.MaxScore, r.Percentage)
	fmt.Fprintln(out, i18n.Must("en").T(r.Band.MessageID()))
	for _, c := range r.Categories {
		fmt.Fprintf(out, "  %-18s %2d / %d\n", c.Name, c.Score, c.Max)
	}
	if r.Sentiment != nil {
		fmt.Fprintf(out, "Reflection sentiment: %+.0f\n", *r.Sentiment)
	}
	if r.Saved {
		fmt.Fprintln(out, "Result saved.")
	} else {
		fmt.Fprintln(out, "Result could not be saved.")
	}
}
