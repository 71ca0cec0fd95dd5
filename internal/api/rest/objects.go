package rest

import (
	"math"
	"net/http"
	"strconv"

	"github.com/draco-astrodb/astrodb/internal/astrodb"
	"github.com/draco-astrodb/astrodb/internal/catnum"
	"github.com/draco-astrodb/astrodb/internal/geom"
	"github.com/draco-astrodb/astrodb/internal/stellar"
	"github.com/gin-gonic/gin"
)

// objectView is the JSON shape returned for a single catalog object,
// whichever kind it is; exactly one of Star/DSO is populated, mirroring
// astrodb.ObjectRef's tagged-union shape.
type objectView struct {
	Kind        string                 `json:"kind"`
	Number      catnum.Number          `json:"number"`
	Name        string                 `json:"name"`
	AbsMag      float32                `json:"abs_mag"`
	Star        *stellar.Star          `json:"star,omitempty"`
	DSO         *stellar.DeepSkyObject `json:"dso,omitempty"`
	DistanceLy  *float64               `json:"distance_ly,omitempty"`
	ApparentMag *float32               `json:"apparent_mag,omitempty"`
}

func newObjectView(db *astrodb.Database, ref astrodb.ObjectRef) objectView {
	v := objectView{
		Number: ref.Number(),
		Name:   db.NameOf(ref.Number()),
		AbsMag: ref.AbsoluteMagnitude(),
	}
	if ref.Kind == astrodb.KindStar {
		v.Kind = "star"
		v.Star = ref.Star
	} else {
		v.Kind = "dso"
		v.DSO = ref.DSO
	}
	return v
}

func (s *Server) getObjectByNumber(c *gin.Context) {
	db := s.database()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded"})
		return
	}

	n, err := strconv.ParseUint(c.Param("number"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog number"})
		return
	}

	ref, ok := db.FindByNumber(catnum.Number(n))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
		return
	}

	c.JSON(http.StatusOK, newObjectView(db, ref))
}

func (s *Server) getObjectByName(c *gin.Context) {
	db := s.database()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded"})
		return
	}

	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name parameter"})
		return
	}
	i18n := c.Query("i18n") == "true"

	ref, ok := db.FindByName(name, i18n)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
		return
	}

	c.JSON(http.StatusOK, newObjectView(db, ref))
}

func (s *Server) completion(c *gin.Context) {
	db := s.database()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded"})
		return
	}

	prefix := c.Query("prefix")
	i18n := c.Query("i18n") == "true"

	c.JSON(http.StatusOK, gin.H{"matches": db.Completion(prefix, i18n)})
}

// queryFloat parses a query parameter as float64, returning def if the
// parameter is absent.
func queryFloat(c *gin.Context, key string, def float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func parseObserverPosition(c *gin.Context) (geom.Vec3f, error) {
	x, err := queryFloat(c, "obs_x", 0)
	if err != nil {
		return geom.Vec3f{}, err
	}
	y, err := queryFloat(c, "obs_y", 0)
	if err != nil {
		return geom.Vec3f{}, err
	}
	z, err := queryFloat(c, "obs_z", 0)
	if err != nil {
		return geom.Vec3f{}, err
	}
	return geom.Vec3f{X: float32(x), Y: float32(y), Z: float32(z)}, nil
}

func parseObserverOrientation(c *gin.Context) (geom.Quatf, error) {
	w, err := queryFloat(c, "orient_w", 1)
	if err != nil {
		return geom.Quatf{}, err
	}
	x, err := queryFloat(c, "orient_x", 0)
	if err != nil {
		return geom.Quatf{}, err
	}
	y, err := queryFloat(c, "orient_y", 0)
	if err != nil {
		return geom.Quatf{}, err
	}
	z, err := queryFloat(c, "orient_z", 0)
	if err != nil {
		return geom.Quatf{}, err
	}
	return geom.Quatf{W: float32(w), X: float32(x), Y: float32(y), Z: float32(z)}, nil
}

func (s *Server) findVisible(c *gin.Context) {
	db := s.database()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded"})
		return
	}

	pos, err := parseObserverPosition(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid observer position"})
		return
	}
	orient, err := parseObserverOrientation(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid observer orientation"})
		return
	}
	fovY, err := queryFloat(c, "fov_y", math.Pi/3)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fov_y"})
		return
	}
	aspect, err := queryFloat(c, "aspect", 16.0/9.0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid aspect"})
		return
	}
	limitMag, err := queryFloat(c, "limit_mag", 6.0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit_mag"})
		return
	}

	var results []objectView
	db.FindVisible(pos, orient, fovY, aspect, float32(limitMag), func(ref astrodb.ObjectRef, dist float64, appMag float32) {
		v := newObjectView(db, ref)
		v.DistanceLy = &dist
		v.ApparentMag = &appMag
		results = append(results, v)
	})

	if s.bus != nil {
		_ = s.bus.Publish(c.Request.Context(), "catalog.object.visible", results)
	}

	c.JSON(http.StatusOK, gin.H{"count": len(results), "objects": results})
}

func (s *Server) findClose(c *gin.Context) {
	db := s.database()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded"})
		return
	}

	pos, err := parseObserverPosition(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid observer position"})
		return
	}
	radius, err := queryFloat(c, "radius", 10.0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
		return
	}

	var results []objectView
	db.FindClose(pos, radius, func(ref astrodb.ObjectRef, dist float64, appMag float32) {
		v := newObjectView(db, ref)
		v.DistanceLy = &dist
		v.ApparentMag = &appMag
		results = append(results, v)
	})

	c.JSON(http.StatusOK, gin.H{"count": len(results), "objects": results})
}
