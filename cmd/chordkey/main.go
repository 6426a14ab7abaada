// Package main is the entry point for the chordkey CLI
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/james-see/chordkey/pkg/api"
	"github.com/james-see/chordkey/pkg/render"
	"github.com/james-see/chordkey/pkg/theory"
	"github.com/james-see/chordkey/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	inversionName string
	outputFile    string
	keyRoot       string
	analyzeRoot   string
	beats         float64
	tempo         float64
	serverPort    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chordkey",
	Short: "Chord tones and major-key degrees from pitch numbers",
	Long: `chordkey computes chord tones and major-key scale degrees from
integer pitches. Pitches are MIDI-style numbers (60) or names (C4, F#3, Bb2).

Examples:
  chordkey chord C4 maj7
  chordkey chord 60 major --inversion first
  chordkey key D4
  chordkey degree C4 3
  chordkey position C4 F4
  chordkey midi C4:maj A3:m F3:maj G3:7 -o progression.mid
  chordkey midi --key C4 -o scale.mid
  chordkey analyze song.mid --root G3
  chordkey tui
  chordkey serve --port 8080`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var chordCmd = &cobra.Command{
	Use:   "chord <root> [quality]",
	Short: "Print the tones of a chord",
	Long: `Prints the chord tones in chord-tone order. Inverted tones keep their
position: the first inversion of C major is 72 64 67. The inversion may be
given inline (C4:maj:first or C4 maj:first) or with --inversion.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runChord,
}

var keyCmd = &cobra.Command{
	Use:   "key <root>",
	Short: "Print the eight notes of a major key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKey,
}

var degreeCmd = &cobra.Command{
	Use:   "degree <root> <n>",
	Short: "Print note n (0-7) of a major key",
	Args:  cobra.ExactArgs(2),
	RunE:  runDegree,
}

var positionCmd = &cobra.Command{
	Use:   "position <root> <note>",
	Short: "Print the scale degree (1-7) of a note in a major key",
	Args:  cobra.ExactArgs(2),
	RunE:  runPosition,
}

var midiCmd = &cobra.Command{
	Use:   "midi [root:quality[:inversion]...]",
	Short: "Write chords or a major scale to a MIDI file",
	RunE:  runMIDI,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input.mid>",
	Short: "Tag each note of a MIDI file with its degree in a major key",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var tuiCmd = &cobra.Command{
	Use:   "tui [root]",
	Short: "Launch interactive chord explorer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// chord command
	chordCmd.Flags().StringVarP(&inversionName, "inversion", "i", "root", "Inversion: root, first or second")

	// midi command
	midiCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path (required)")
	midiCmd.Flags().StringVar(&keyRoot, "key", "", "Write the major scale on this root instead of chords")
	midiCmd.Flags().Float64Var(&beats, "beats", 4, "Length of each chord in quarter notes")
	midiCmd.Flags().Float64Var(&tempo, "tempo", 120, "Tempo in BPM")
	_ = midiCmd.MarkFlagRequired("output")

	// analyze command
	analyzeCmd.Flags().StringVarP(&analyzeRoot, "root", "r", "C4", "Root of the major key")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(chordCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(degreeCmd)
	rootCmd.AddCommand(positionCmd)
	rootCmd.AddCommand(midiCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func formatPitches(ps []theory.Pitch) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%d(%s)", int(p), p)
	}
	return strings.Join(parts, " ")
}

// parseChordSpec parses "C4:maj7:first"; quality defaults to major
func parseChordSpec(spec string) (theory.Chord, error) {
	parts := strings.Split(spec, ":")
	if len(parts) > 3 {
		return theory.Chord{}, fmt.Errorf("bad chord %q: want root[:quality[:inversion]]", spec)
	}

	root, err := theory.ParsePitch(parts[0])
	if err != nil {
		return theory.Chord{}, err
	}
	c := theory.Chord{Root: root, Quality: theory.Major}
	if len(parts) > 1 {
		if c.Quality, err = theory.ParseQuality(parts[1]); err != nil {
			return theory.Chord{}, err
		}
	}
	if len(parts) > 2 {
		if c.Inversion, err = theory.ParseInversion(parts[2]); err != nil {
			return theory.Chord{}, err
		}
	}
	return c, nil
}

func runChord(cmd *cobra.Command, args []string) error {
	spec := args[0]
	if len(args) == 2 {
		spec += ":" + args[1]
	}
	c, err := parseChordSpec(spec)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("inversion") {
		if strings.Count(spec, ":") == 2 {
			return fmt.Errorf("inversion given both in %q and with --inversion", spec)
		}
		if c.Inversion, err = theory.ParseInversion(inversionName); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c.Name(), formatPitches(c.Notes()))
	return nil
}

func runKey(cmd *cobra.Command, args []string) error {
	root, err := theory.ParsePitch(args[0])
	if err != nil {
		return err
	}

	k := theory.Key{Root: root}
	notes := k.Notes()
	fmt.Printf("%s: %s\n", k.Name(), formatPitches(notes[:]))
	return nil
}

func runDegree(cmd *cobra.Command, args []string) error {
	root, err := theory.ParsePitch(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("n must be an integer: %w", err)
	}

	note, err := theory.NthNoteInKey(root, n)
	if err != nil {
		return err
	}
	fmt.Printf("%d(%s)\n", int(note), note)
	return nil
}

func runPosition(cmd *cobra.Command, args []string) error {
	root, err := theory.ParsePitch(args[0])
	if err != nil {
		return err
	}
	note, err := theory.ParsePitch(args[1])
	if err != nil {
		return err
	}

	k := theory.Key{Root: root}
	if degree, ok := k.Position(note); ok {
		fmt.Printf("%s is degree %d of %s\n", note, degree, k.Name())
	} else {
		fmt.Printf("%s is not in %s\n", note, k.Name())
	}
	return nil
}

func runMIDI(cmd *cobra.Command, args []string) error {
	r := render.NewMIDIRenderer().WithTempo(tempo)

	var data []byte
	var err error
	switch {
	case keyRoot != "" && len(args) > 0:
		return fmt.Errorf("use either --key or chord arguments, not both")
	case keyRoot != "":
		root, perr := theory.ParsePitch(keyRoot)
		if perr != nil {
			return perr
		}
		data, err = r.RenderKey(theory.Key{Root: root})
	default:
		chords := make([]theory.Chord, 0, len(args))
		for _, spec := range args {
			c, perr := parseChordSpec(spec)
			if perr != nil {
				return perr
			}
			chords = append(chords, c)
		}
		data, err = r.RenderChords(chords, beats)
	}
	if err != nil {
		return err
	}

	if err := render.WriteFile(outputFile, data); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", outputFile)
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]
	root, err := theory.ParsePitch(analyzeRoot)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	report, err := render.AnalyzeKey(data, theory.Key{Root: root})
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	for _, ev := range report.Events {
		degree := "-"
		if ev.Degree > 0 {
			degree = strconv.Itoa(ev.Degree)
		}
		fmt.Printf("%8d  track %-2d  %-5s %s\n", ev.Tick, ev.Track, ev.Name, degree)
	}
	fmt.Printf("%d of %d notes in %s\n", report.Diatonic, report.Total, report.Key.Name())
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	root := theory.Pitch(60)
	if len(args) == 1 {
		p, err := theory.ParsePitch(args[0])
		if err != nil {
			return err
		}
		root = p
	}
	return tui.Run(root)
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
