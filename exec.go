package cellgrid

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/esimov/cellgrid/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

var (
	// layoutExtensions are the layout files picked up from a source directory.
	layoutExtensions = []string{".yaml", ".yml", ".toml", ".json"}
	// outputExtensions are the supported destination files.
	outputExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".svg"}
)

// Ops describes a batch rendering job.
type Ops struct {
	Src, Dst, PipeName string
	// Ext is the output extension used for the files rendered from a directory.
	Ext     string
	Workers int
}

// result holds the relevant information about a rendered layout.
type result struct {
	path string
	err  error
}

// Execute renders the layouts described by op. The source can be a layout
// file, an URL, the pipe name or a directory, in which case every layout
// file found in it is rendered concurrently into the destination directory.
func (p *Processor) Execute(op *Ops) error {
	if err := p.Validate(); err != nil {
		return err
	}

	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("▦ CELLGRID", utils.StatusMessage),
		utils.DecorateText("⇢ rendering layout...", utils.DefaultMessage),
	)
	if p.Spinner == nil {
		p.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)
	}

	// Capture CTRL-C signal and restores back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	defer func() {
		signal.Stop(signalChan)
		close(done)
	}()
	go func() {
		select {
		case <-signalChan:
			p.Spinner.RestoreCursor()
			os.Exit(1)
		case <-done:
		}
	}()

	now := time.Now()
	defer func() {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}()

	if utils.IsValidUrl(op.Src) {
		return op.processURL(p)
	}

	var (
		fs  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source layout: %w", err)
	}

	switch mode := fs.Mode(); {
	case mode.IsDir():
		return op.processDir(p)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0 || op.Src == op.PipeName:
		ext := strings.ToLower(filepath.Ext(op.Dst))
		if !utils.Contains(outputExtensions, ext) && op.Dst != op.PipeName {
			return fmt.Errorf("%v file type not supported", ext)
		}
		p.Spinner.Start()
		err = op.process(p, op.Src, op.Dst)
		op.stopSpinner(p, err)
		op.printOpStatus(op.Dst, err)
		return err
	}
	return fmt.Errorf("unsupported source: %q", op.Src)
}

// processDir renders every layout file of the source directory concurrently.
func (op *Ops) processDir(p *Processor) error {
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}

	ext := op.Ext
	if ext == "" {
		ext = ".png"
	}
	ext = "." + strings.TrimPrefix(ext, ".")
	if !utils.Contains(outputExtensions, ext) {
		return fmt.Errorf("%v file type not supported", ext)
	}

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, errc := walkDir(ctx.Done(), op.Src, layoutExtensions)
	results := make(chan result)

	// The workers share a single progress indicator.
	p.Spinner.Start()

	g := new(errgroup.Group)
	g.SetLimit(workers)
	go func() {
		defer close(results)
		for src := range paths {
			src := src
			g.Go(func() error {
				name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ext
				err := op.process(p, src, filepath.Join(op.Dst, name))
				results <- result{path: src, err: err}
				return nil
			})
		}
		g.Wait()
	}()

	var (
		failed error
		status []result
	)
	for res := range results {
		if res.err != nil {
			failed = errors.Join(failed, fmt.Errorf("%s: %w", res.path, res.err))
		}
		status = append(status, res)
	}
	if err := <-errc; err != nil {
		failed = errors.Join(failed, err)
	}
	op.stopSpinner(p, failed)

	for _, res := range status {
		op.printOpStatus(res.path, res.err)
	}
	return failed
}

// processURL downloads a remote layout and renders it.
func (op *Ops) processURL(p *Processor) error {
	data, err := utils.Download(context.Background(), op.Src)
	if err != nil {
		return fmt.Errorf("failed to load the source layout: %w", err)
	}

	proc := *p
	if u, err := url.Parse(op.Src); err == nil {
		if format, err := FormatOf(path.Base(u.Path)); err == nil {
			proc.Format = format
		}
	}

	dst, closeDst, err := op.openDst(op.Dst)
	if err != nil {
		return err
	}
	defer closeDst()

	p.Spinner.Start()
	err = proc.Process(bytes.NewReader(data), dst)
	op.stopSpinner(p, err)
	op.printOpStatus(op.Dst, err)

	return err
}

// process calls the layout renderer over the source file and returns the error in case exists.
// The progress indicator is driven by the caller.
func (op *Ops) process(p *Processor, in, out string) error {
	src, closeSrc, err := op.openSrc(in)
	if err != nil {
		return err
	}
	defer closeSrc()

	dst, closeDst, err := op.openDst(out)
	if err != nil {
		return err
	}

	err = p.Process(src, dst)
	closeDst()
	if err != nil && out != op.PipeName {
		// remove the generated file in case of an error
		os.Remove(out)
	}
	return err
}

func (op *Ops) stopSpinner(p *Processor, err error) {
	msg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("▦ CELLGRID", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the layout has been rendered successfully ✔", utils.SuccessMessage),
	)
	if err != nil {
		msg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("▦ CELLGRID", utils.StatusMessage),
			utils.DecorateText("rendering layout failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	}
	// Stop the progress indicator.
	p.Spinner.StopWithMsg(msg)
}

// openSrc opens the source layout, be it a regular file or the stdin pipe.
func (op *Ops) openSrc(in string) (io.Reader, func(), error) {
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(in)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
	}
	return f, closeFn(f), nil
}

// openDst opens the destination, be it a regular file or the stdout pipe.
func (op *Ops) openDst(out string) (io.Writer, func(), error) {
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, func() {}, nil
	}

	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, closeFn(f), nil
}

func closeFn(f *os.File) func() {
	return func() {
		if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			log.Printf("could not close the opened file: %v", err)
		}
	}
}

// printOpStatus displays the relevant information about the rendering process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		log.Printf("%s%s",
			utils.DecorateText("\nError rendering the layout: "+filepath.Base(fname), utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe layout has been saved as: %s %s\n\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan struct{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !utils.Contains(srcExts, strings.ToLower(filepath.Ext(f.Name()))) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
