package app

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"sort"
	"strings"

	"singletuple/internal/core/errors"
	"singletuple/internal/core/ports"

	"github.com/go-git/go-git/v5"
)

// ChangeSet lists the Python files that differ from HEAD in a worktree.
type ChangeSet struct {
	Root   string
	Commit string
	Files  []string
}

// GitChanges opens the repository containing start and collects modified,
// added, and untracked .py files. Deleted files are left out.
func GitChanges(start string) (ChangeSet, error) {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return ChangeSet{}, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "not a git repository"), errors.CtxPath, start)
		}
		return ChangeSet{}, errors.AddContext(errors.Wrap(err, errors.CodeIO, "open git repository"), errors.CtxPath, start)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return ChangeSet{}, errors.Wrap(err, errors.CodeNotSupported, "repository has no worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return ChangeSet{}, errors.Wrap(err, errors.CodeIO, "read worktree status")
	}

	root := wt.Filesystem.Root()
	files := make([]string, 0, len(status))
	for rel, st := range status {
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		if st.Worktree == git.Deleted || (st.Staging == git.Deleted && st.Worktree != git.Untracked) {
			continue
		}
		if !strings.EqualFold(filepath.Ext(rel), ".py") {
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(rel)))
	}
	sort.Strings(files)

	return ChangeSet{Root: root, Commit: headHash(repo), Files: files}, nil
}

// HeadCommit returns the HEAD hash of the repository containing start, or ""
// outside a repository or before the first commit.
func HeadCommit(start string) string {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	return headHash(repo)
}

func headHash(repo *git.Repository) string {
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}

// CheckChanged runs the rule over the files changed in the working tree.
func (a *App) CheckChanged(ctx context.Context) (*ports.Report, error) {
	changes, err := GitChanges(a.Paths.ProjectRoot)
	if err != nil {
		return nil, err
	}
	report, err := a.run(ctx, a.filterChanged(changes.Files))
	if err != nil {
		return nil, err
	}
	report.Commit = changes.Commit
	a.finish(ctx, report)
	return report, nil
}
