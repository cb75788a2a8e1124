package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortener/internal/entity"
)

type URLRepositoryTestSuite struct {
	suite.Suite
	repo *URLRepository
}

func (suite *URLRepositoryTestSuite) SetupSubTest() {
	suite.repo = NewURLRepository()
}

func (suite *URLRepositoryTestSuite) shortCode(code string) entity.ShortCode {
	shortCode, err := entity.NewShortCode(code)
	suite.Require().NoError(err)
	return shortCode
}

func (suite *URLRepositoryTestSuite) url(code string) entity.URL {
	originalURL, err := entity.NewOriginalURL("https://example.com")
	suite.Require().NoError(err)
	return entity.NewURL(entity.ID("id-"+code), suite.shortCode(code), originalURL)
}

func (suite *URLRepositoryTestSuite) TestSave() {
	suite.Run("success", func() {
		err := suite.repo.Save(context.Background(), suite.url("test1234"))

		suite.NoError(err)
		suite.Equal(1, suite.repo.Len())
	})

	suite.Run("short code exists", func() {
		first := suite.url("dupe1234")
		second := suite.url("dupe1234")
		second.ID = "other"

		suite.Require().NoError(suite.repo.Save(context.Background(), first))
		err := suite.repo.Save(context.Background(), second)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrShortCodeExists)

		url, err := suite.repo.RetrieveByShortCode(context.Background(), first.ShortCode)
		suite.NoError(err)
		suite.Equal(first.ID, url.ID)
	})
}

func (suite *URLRepositoryTestSuite) TestRetrieveByShortCode() {
	suite.Run("url not found", func() {
		url, err := suite.repo.RetrieveByShortCode(context.Background(), suite.shortCode("notfound"))

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(url)
	})

	suite.Run("success", func() {
		want := suite.url("test1234")
		suite.Require().NoError(suite.repo.Save(context.Background(), want))

		url, err := suite.repo.RetrieveByShortCode(context.Background(), want.ShortCode)

		suite.NoError(err)
		suite.Equal(want, *url)
	})

	suite.Run("returns copy", func() {
		want := suite.url("test1234")
		suite.Require().NoError(suite.repo.Save(context.Background(), want))

		url, err := suite.repo.RetrieveByShortCode(context.Background(), want.ShortCode)
		suite.Require().NoError(err)
		url.RecordAccess()

		stored, err := suite.repo.RetrieveByShortCode(context.Background(), want.ShortCode)
		suite.NoError(err)
		suite.Zero(stored.AccessCount)
	})
}

func (suite *URLRepositoryTestSuite) TestUpdate() {
	suite.Run("url not found", func() {
		err := suite.repo.Update(context.Background(), suite.url("updt1234"))

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Zero(suite.repo.Len())
	})

	suite.Run("success", func() {
		url := suite.url("updt1234")
		suite.Require().NoError(suite.repo.Save(context.Background(), url))

		url.RecordAccess()
		err := suite.repo.Update(context.Background(), url)
		suite.NoError(err)

		stored, err := suite.repo.RetrieveByShortCode(context.Background(), url.ShortCode)
		suite.NoError(err)
		suite.Equal(uint64(1), stored.AccessCount)
	})
}

func (suite *URLRepositoryTestSuite) TestExists() {
	suite.Run("success", func() {
		url := suite.url("exst1234")

		exists, err := suite.repo.Exists(context.Background(), url.ShortCode)
		suite.NoError(err)
		suite.False(exists)

		suite.Require().NoError(suite.repo.Save(context.Background(), url))

		exists, err = suite.repo.Exists(context.Background(), url.ShortCode)
		suite.NoError(err)
		suite.True(exists)
	})
}

func (suite *URLRepositoryTestSuite) TestRemove() {
	suite.Run("url not found", func() {
		err := suite.repo.Remove(context.Background(), suite.shortCode("dele1234"))

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
	})

	suite.Run("success", func() {
		url := suite.url("dele1234")
		suite.Require().NoError(suite.repo.Save(context.Background(), url))

		err := suite.repo.Remove(context.Background(), url.ShortCode)
		suite.NoError(err)

		exists, err := suite.repo.Exists(context.Background(), url.ShortCode)
		suite.NoError(err)
		suite.False(exists)
	})
}

func (suite *URLRepositoryTestSuite) TestList() {
	suite.Run("empty", func() {
		urls, err := suite.repo.List(context.Background())

		suite.NoError(err)
		suite.Empty(urls)
	})

	suite.Run("success", func() {
		suite.Require().NoError(suite.repo.Save(context.Background(), suite.url("list1234")))
		suite.Require().NoError(suite.repo.Save(context.Background(), suite.url("list5678")))

		urls, err := suite.repo.List(context.Background())

		suite.NoError(err)
		suite.Len(urls, 2)

		codes := []string{urls[0].ShortCode.String(), urls[1].ShortCode.String()}
		suite.ElementsMatch([]string{"list1234", "list5678"}, codes)
	})
}

func (suite *URLRepositoryTestSuite) TestConcurrentSave() {
	suite.Run("exactly one winner", func() {
		const n = 64

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			conflicts int
		)

		url := suite.url("race1234")
		start := make(chan struct{})
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start

				err := suite.repo.Save(context.Background(), url)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case errors.Is(err, entity.ErrShortCodeExists):
					conflicts++
				}
			}()
		}
		close(start)
		wg.Wait()

		suite.Equal(1, successes)
		suite.Equal(n-1, conflicts)
		suite.Equal(1, suite.repo.Len())
	})
}

func TestURLRepository(t *testing.T) {
	suite.Run(t, new(URLRepositoryTestSuite))
}
