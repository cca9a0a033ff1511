package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/limaJavier/examseating/pkg/config"
	"github.com/limaJavier/examseating/pkg/logger"
	"github.com/limaJavier/examseating/pkg/model"
	"github.com/limaJavier/examseating/pkg/report"
	"github.com/limaJavier/examseating/pkg/sheet"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	excelFileName = "Exam_Seating.xlsx"
	pdfFileName   = "Exam_Seating.pdf"
)

// subjectFlags collects every "-subject Name=path.xlsx" occurrence in command-line order
type subjectFlags []string

func (flags *subjectFlags) String() string {
	return strings.Join(*flags, ", ")
}

func (flags *subjectFlags) Set(value string) error {
	*flags = append(*flags, value)
	return nil
}

func main() {
	setConfigPath()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load configuration: %v\n", err)
		os.Exit(1)
	}

	// Define arguments
	var subjects subjectFlags
	filePathPtr := flag.String("file", "", "Path to a JSON request holding rooms, subjects, seats per bench and mode")
	roomsPathPtr := flag.String("rooms", "", "Path to a rooms workbook with the columns \"Room No\", \"Rows\" and \"Columns\" (ignored when -file is given)")
	flag.Var(&subjects, "subject", "Subject in the form Name=path.xlsx, where the workbook has a \"Roll No\" column; repeat once per subject, in upload order")
	seatsPtr := flag.Int("seats", cfg.SeatsPerBench, "Students per bench")
	modePtr := flag.String("mode", cfg.Mode, fmt.Sprintf("Allocation mode. Allowed values are: %v", strings.Join(lo.Map(model.Modes(), func(mode model.Mode, _ int) string {
		return fmt.Sprintf("%q", mode.String())
	}), ", ")))
	excelPtr := flag.Bool("excel", false, "Write the seating plan as a workbook into the output directory")
	pdfPtr := flag.Bool("pdf", false, "Write the seating plan as a PDF into the output directory")
	outputDirPtr := flag.String("outdir", cfg.OutputDir, "Directory where the workbook and the PDF are written")
	outFilePathPtr := flag.String("out", "", "Path to the file where the JSON allocation will be written; if empty, it'll be written into the Standard Output")
	flag.Parse()

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log = log.With(zap.String("run_id", uuid.NewString()))

	// Validate arguments
	if *filePathPtr == "" && *roomsPathPtr == "" {
		log.Fatal("either an input file (-file) or a rooms workbook (-rooms) must be specified")
	} else if *filePathPtr == "" && len(subjects) == 0 {
		log.Fatal("at least one subject (-subject Name=path.xlsx) must be specified")
	}

	// Extract input
	var input model.AllocationInput
	if *filePathPtr != "" {
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		input, err = loadRequestFile(*filePathPtr, *seatsPtr, *modePtr, explicit)
	} else {
		input, err = loadWorkbooks(*roomsPathPtr, subjects, *seatsPtr, *modePtr)
	}
	if err != nil {
		exitOnAllocationError(log, err)
		log.Fatal("cannot load input", zap.Error(err))
	}

	// Build allocation
	allocator := model.NewAllocator(log)
	allocations, err := allocator.Allocate(input.Rooms, input.Subjects, input.SeatsPerBench, input.Mode)
	if err != nil {
		exitOnAllocationError(log, err)
		log.Fatal("an error occurred during seat allocation", zap.Error(err))
	}

	// Verify allocation correctness
	if !allocator.Verify(allocations, input.Rooms, input.Subjects, input.SeatsPerBench) {
		log.Error("allocation verification failed",
			zap.Int("seatsPerBench", input.SeatsPerBench),
			zap.Strings("unseated", model.Unseated(allocations, input.Subjects)),
		)
		log.Sync()
		os.Exit(15)
	}

	// Write requested documents
	if *excelPtr {
		excelPath := filepath.Join(*outputDirPtr, excelFileName)
		if err := sheet.WriteAllocations(allocations, excelPath); err != nil {
			log.Fatal("cannot write workbook", zap.Error(err))
		}
		log.Info("workbook generated", zap.String("path", excelPath))
	}
	if *pdfPtr {
		pdfPath := filepath.Join(*outputDirPtr, pdfFileName)
		if err := report.WritePdf(allocations, pdfPath); err != nil {
			log.Fatal("cannot write pdf", zap.Error(err))
		}
		log.Info("pdf generated", zap.String("path", pdfPath))
	}

	// Marshal output into json
	allocationsJson, err := json.Marshal(allocations)
	if err != nil {
		log.Fatal("an error occurred while building output json", zap.Error(err))
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		fmt.Println(string(allocationsJson))
	} else if err := os.WriteFile(*outFilePathPtr, allocationsJson, 0666); err != nil {
		log.Fatal("an error occurred while writing to the output file", zap.Error(err))
	}
}

// Reads a JSON request. The seats and mode values (flag or configuration) fill the fields the request leaves out, and replace the request's own when given explicitly on the command line
func loadRequestFile(filePath string, seatsPerBench int, modeName string, explicit map[string]bool) (model.AllocationInput, error) {
	mode, err := model.ParseMode(modeName)
	if err != nil {
		return model.AllocationInput{}, err
	}

	input, err := model.InputFromJson(filePath, model.InputDefaults{SeatsPerBench: seatsPerBench, Mode: mode})
	if err != nil {
		return model.AllocationInput{}, err
	}
	if explicit["seats"] {
		input.SeatsPerBench = seatsPerBench
	}
	if explicit["mode"] {
		input.Mode = mode
	}
	return input, nil
}

func loadWorkbooks(roomsPath string, subjects subjectFlags, seatsPerBench int, modeName string) (model.AllocationInput, error) {
	mode, err := model.ParseMode(modeName)
	if err != nil {
		return model.AllocationInput{}, err
	}

	rooms, err := sheet.LoadRooms(roomsPath)
	if err != nil {
		return model.AllocationInput{}, err
	}

	subjectData := make([]model.SubjectData, 0, len(subjects))
	for _, subject := range subjects {
		name, subjectPath, err := parseSubjectFlag(subject)
		if err != nil {
			return model.AllocationInput{}, err
		}
		data, err := sheet.LoadSubject(name, subjectPath)
		if err != nil {
			return model.AllocationInput{}, err
		}
		subjectData = append(subjectData, data)
	}

	return model.AllocationInput{
		Rooms:         rooms,
		Subjects:      subjectData,
		SeatsPerBench: seatsPerBench,
		Mode:          mode,
	}, nil
}

// Splits "Name=path" at the first '='
func parseSubjectFlag(value string) (name string, subjectPath string, err error) {
	name, subjectPath, ok := strings.Cut(value, "=")
	name, subjectPath = strings.TrimSpace(name), strings.TrimSpace(subjectPath)
	if !ok || name == "" || subjectPath == "" {
		return "", "", fmt.Errorf("subject must be given as Name=path.xlsx: %q", value)
	}
	return name, subjectPath, nil
}

// Request-level failures are reported with their kind so the caller can fix the input and retry
func exitOnAllocationError(log *zap.Logger, err error) {
	var allocationErr *model.AllocationError
	if !errors.As(err, &allocationErr) {
		return
	}
	log.Error("allocation rejected",
		zap.Stringer("kind", allocationErr.Kind),
		zap.String("reason", allocationErr.Message),
	)
	fmt.Fprintf(os.Stderr, "%v: %v\n", allocationErr.Kind, allocationErr.Message)
	log.Sync()
	os.Exit(2)
}

// Points the configuration at the config.json next to the executable, when there is one
func setConfigPath() {
	execPath, err := os.Executable()
	if err != nil {
		return
	}
	execPath = path.Dir(execPath)

	files, err := os.ReadDir(execPath)
	if err != nil {
		return
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })

	if slices.Contains(fileNames, "config.json") {
		config.ConfigPath = execPath + "/config.json"
	}
}
