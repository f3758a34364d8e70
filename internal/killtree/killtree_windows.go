//go:build windows

package killtree

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/google/uuid"
	"golang.org/x/sys/windows"
)

// Job Object kernel32 procedures. golang.org/x/sys/windows does not wrap
// these, so they are declared the same way the rest of that package
// declares its own syscalls: a lazy-loaded DLL plus explicit procedure
// addresses. Grounded on original_source/src/pkg/runner.rs's own
// unsafe extern "system" block for the identical set of calls, and on
// the Job Object wrapping style in
// other_examples/d98c9173_ormasoftchile-cli-replay__cmd-exec_windows.go.go.
var (
	modkernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procCreateJobObjectW         = modkernel32.NewProc("CreateJobObjectW")
	procAssignProcessToJobObject = modkernel32.NewProc("AssignProcessToJobObject")
	procSetInformationJobObject  = modkernel32.NewProc("SetInformationJobObject")
)

const (
	jobObjectExtendedLimitInformation = 9
	jobObjectLimitKillOnJobClose      = 0x2000
)

// jobObjectBasicLimitInformation mirrors JOBOBJECT_BASIC_LIMIT_INFORMATION;
// only LimitFlags is ever set, the rest exists purely to match the struct
// layout SetInformationJobObject expects.
type jobObjectBasicLimitInformation struct {
	PerProcessUserTimeLimit int64
	PerJobUserTimeLimit     int64
	LimitFlags              uint32
	MinimumWorkingSetSize   uintptr
	MaximumWorkingSetSize   uintptr
	ActiveProcessLimit      uint32
	Affinity                uintptr
	PriorityClass           uint32
	SchedulingClass         uint32
}

type ioCounters struct {
	ReadOperationCount  uint64
	WriteOperationCount uint64
	OtherOperationCount uint64
	ReadTransferCount   uint64
	WriteTransferCount  uint64
	OtherTransferCount  uint64
}

type jobObjectExtendedLimitInformationT struct {
	BasicLimitInformation jobObjectBasicLimitInformation
	IoInfo                ioCounters
	ProcessMemoryLimit    uintptr
	JobMemoryLimit        uintptr
	PeakProcessMemoryUsed uintptr
	PeakJobMemoryUsed     uintptr
}

// Handle owns a Windows Job Object configured so that closing it
// terminates every process still attached.
type Handle struct {
	h windows.Handle
}

// Create allocates a fresh Job Object with the "terminate all members on
// last handle close" policy (JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE).
func Create() (*Handle, error) {
	name := fmt.Sprintf(`Local\wsw-%s`, uuid.NewString())
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceExhausted, err)
	}

	r, _, callErr := procCreateJobObjectW.Call(0, uintptr(unsafe.Pointer(namePtr)))
	if r == 0 {
		return nil, fmt.Errorf("%w: CreateJobObjectW: %v", ErrResourceExhausted, callErr)
	}
	h := windows.Handle(r)

	info := jobObjectExtendedLimitInformationT{
		BasicLimitInformation: jobObjectBasicLimitInformation{
			LimitFlags: jobObjectLimitKillOnJobClose,
		},
	}
	ret, _, callErr := procSetInformationJobObject.Call(
		uintptr(h),
		uintptr(jobObjectExtendedLimitInformation),
		uintptr(unsafe.Pointer(&info)),
		unsafe.Sizeof(info),
	)
	if ret == 0 {
		windows.CloseHandle(h)
		return nil, fmt.Errorf("%w: SetInformationJobObject: %v", ErrResourceExhausted, callErr)
	}

	return &Handle{h: h}, nil
}

// Attach associates a spawned process with the group. Must be called
// immediately after spawn, before the child can create any descendant of
// its own.
func (k *Handle) Attach(proc *os.Process) error {
	if proc == nil {
		return ErrAttachFailed
	}
	ph, err := windows.OpenProcess(windows.PROCESS_SET_QUOTA|windows.PROCESS_TERMINATE, false, uint32(proc.Pid))
	if err != nil {
		return fmt.Errorf("%w: OpenProcess: %v", ErrAttachFailed, err)
	}
	defer windows.CloseHandle(ph)

	ret, _, callErr := procAssignProcessToJobObject.Call(uintptr(k.h), uintptr(ph))
	if ret == 0 {
		return fmt.Errorf("%w: AssignProcessToJobObject: %v", ErrAttachFailed, callErr)
	}
	return nil
}

// Close releases the Job Object handle, which synchronously terminates
// every process still attached to it. Idempotent: closing twice is safe.
func (k *Handle) Close() error {
	if k.h == 0 {
		return nil
	}
	err := windows.CloseHandle(k.h)
	k.h = 0
	return err
}
