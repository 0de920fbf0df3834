package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookmarks/internal/client/client"
	"github.com/dmitrijs2005/bookmarks/internal/client/models"
	"github.com/dmitrijs2005/bookmarks/internal/common"
)

var errUsage = errors.New("usage")

func parseItemID(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s <item id>", errUsage, cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s <item id>", errUsage, cmd)
	}
	return id, nil
}

func (a *App) printItems(items []models.Item, marked map[int64]bool) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing found")
		return
	}
	for _, it := range items {
		mark := " "
		if marked[it.ID] {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %4d  %s  %s\n", mark, it.ID, it.Title, it.URL)
	}
}

// Items prints the catalog; bookmarked items are starred when logged in.
func (a *App) Items(ctx context.Context, args []string) error {
	items, err := a.bookmarkService.Items(ctx, strings.Join(args, " "))
	if err != nil {
		a.report(err)
		return err
	}

	marked := map[int64]bool{}
	if a.isLoggedIn() {
		cached, err := a.bookmarkService.Cached(ctx, "")
		if err == nil {
			for _, it := range cached {
				marked[it.ID] = true
			}
		}
	}

	a.printItems(items, marked)
	return nil
}

// Bookmarks lists the user's bookmarks, falling back to the mirror when
// the server cannot be reached.
func (a *App) Bookmarks(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")

	items, err := a.bookmarkService.List(ctx, query)
	if errors.Is(err, client.ErrUnavailable) {
		fmt.Fprintln(a.out, "Server unavailable, showing cached bookmarks")
		items, err = a.bookmarkService.Cached(ctx, query)
	}
	if err != nil {
		a.report(err)
		return err
	}

	a.printItems(items, nil)
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	id, err := parseItemID("add", args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.bookmarkService.Add(ctx, id); err != nil {
		if errors.Is(err, common.ErrAlreadyBookmarked) {
			fmt.Fprintln(a.out, "Item already bookmarked")
			return err
		}
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, "Bookmark added successfully")
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := parseItemID("remove", args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.bookmarkService.Remove(ctx, id); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, "Bookmark removed successfully")
	return nil
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	id, err := parseItemID("toggle", args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	added, err := a.bookmarkService.Toggle(ctx, id)
	if err != nil {
		a.report(err)
		return err
	}

	if added {
		fmt.Fprintln(a.out, "Bookmark added successfully")
	} else {
		fmt.Fprintln(a.out, "Bookmark removed successfully")
	}
	return nil
}
