package goodreadstest

// Values served by the fake API. Tests assert against these.
const (
	Key    = "test-key"
	Secret = "test-secret"

	RequestToken  = "request-token"
	RequestSecret = "request-secret"
	AccessToken   = "access-token"
	AccessSecret  = "access-secret"

	UserID       = "1001"
	Username     = "ereader"
	UserName     = "Eve Reader"
	BookID       = "234225"
	BookISBN     = "0441172717"
	BookTitle    = "Dune (Dune Chronicles, #1)"
	AuthorID     = "58"
	AuthorName   = "Frank Herbert"
	ReviewID     = "9001"
	CommentCount = 2
)

const userXML = `<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <Request>
    <authentication>true</authentication>
    <key><![CDATA[test-key]]></key>
    <method><![CDATA[user_show]]></method>
  </Request>
  <user>
    <id>1001</id>
    <name>Eve Reader</name>
    <user_name>ereader</user_name>
    <link><![CDATA[https://www.goodreads.com/user/show/1001-eve-reader]]></link>
    <image_url><![CDATA[https://images.gr-assets.com/users/1001p3.jpg]]></image_url>
    <small_image_url><![CDATA[https://images.gr-assets.com/users/1001p2.jpg]]></small_image_url>
    <about>Reads mostly science fiction.</about>
    <age>34</age>
    <gender>female</gender>
    <location>Lisbon, Portugal</location>
    <website/>
    <joined>03/2011</joined>
    <last_active>10/2019</last_active>
    <interests>space opera, linguistics</interests>
    <favorite_books>Dune, Solaris</favorite_books>
    <friends_count type="integer">12</friends_count>
    <reviews_count type="integer">87</reviews_count>
    <user_shelves type="array">
      <user_shelf>
        <id type="integer">11</id>
        <name>read</name>
        <book_count type="integer">80</book_count>
        <exclusive_flag type="boolean">true</exclusive_flag>
        <sort nil="true"/>
        <order nil="true"/>
        <featured type="boolean">false</featured>
      </user_shelf>
      <user_shelf>
        <id type="integer">12</id>
        <name>to-read</name>
        <book_count type="integer">143</book_count>
        <exclusive_flag type="boolean">true</exclusive_flag>
        <sort>position</sort>
        <order>a</order>
        <featured type="boolean">true</featured>
      </user_shelf>
    </user_shelves>
  </user>
</GoodreadsResponse>`

const authUserXML = `<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <Request>
    <authentication>true</authentication>
    <key><![CDATA[test-key]]></key>
    <method><![CDATA[api_auth_user]]></method>
  </Request>
  <user id="1001">
    <name>Eve Reader</name>
    <link><![CDATA[https://www.goodreads.com/user/show/1001-eve-reader]]></link>
  </user>
</GoodreadsResponse>`

const bookXML = `<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <Request>
    <authentication>true</authentication>
    <key><![CDATA[test-key]]></key>
    <method><![CDATA[book_show]]></method>
  </Request>
  <book>
    <id>234225</id>
    <title><![CDATA[Dune (Dune Chronicles, #1)]]></title>
    <isbn><![CDATA[0441172717]]></isbn>
    <isbn13><![CDATA[9780441172719]]></isbn13>
    <asin><![CDATA[]]></asin>
    <kindle_asin><![CDATA[B00B7NPRY8]]></kindle_asin>
    <image_url>https://images.gr-assets.com/books/1434908555m/234225.jpg</image_url>
    <small_image_url>https://images.gr-assets.com/books/1434908555s/234225.jpg</small_image_url>
    <publication_year>1990</publication_year>
    <publication_month>9</publication_month>
    <publication_day>1</publication_day>
    <publisher>Ace Books</publisher>
    <language_code>eng</language_code>
    <is_ebook>false</is_ebook>
    <description><![CDATA[Set on the desert planet <b>Arrakis</b>, Dune is the story of the boy Paul Atreides.<br /><br />A stunning blend of adventure and mysticism.]]></description>
    <work>
      <id type="integer">3634639</id>
      <books_count type="integer">365</books_count>
      <best_book_id type="integer">234225</best_book_id>
      <reviews_count type="integer">1160487</reviews_count>
      <ratings_sum type="integer">3101468</ratings_sum>
      <ratings_count type="integer">734214</ratings_count>
      <text_reviews_count type="integer">21074</text_reviews_count>
      <original_publication_year type="integer">1965</original_publication_year>
      <original_publication_month type="integer">8</original_publication_month>
      <original_title>Dune</original_title>
      <media_type>book</media_type>
    </work>
    <average_rating>4.22</average_rating>
    <num_pages><![CDATA[535]]></num_pages>
    <format><![CDATA[Mass Market Paperback]]></format>
    <edition_information><![CDATA[]]></edition_information>
    <ratings_count><![CDATA[553718]]></ratings_count>
    <text_reviews_count><![CDATA[11298]]></text_reviews_count>
    <url><![CDATA[https://www.goodreads.com/book/show/234225.Dune]]></url>
    <link><![CDATA[https://www.goodreads.com/book/show/234225.Dune]]></link>
    <authors>
      <author>
        <id>58</id>
        <name>Frank Herbert</name>
        <role></role>
        <image_url nophoto='false'><![CDATA[https://images.gr-assets.com/authors/1168661521p5/58.jpg]]></image_url>
        <small_image_url nophoto='false'><![CDATA[https://images.gr-assets.com/authors/1168661521p2/58.jpg]]></small_image_url>
        <link><![CDATA[https://www.goodreads.com/author/show/58.Frank_Herbert]]></link>
        <average_rating>3.95</average_rating>
        <ratings_count>1147564</ratings_count>
        <text_reviews_count>39425</text_reviews_count>
      </author>
    </authors>
    <popular_shelves>
      <shelf name="to-read" count="381277"/>
      <shelf name="science-fiction" count="21645"/>
      <shelf name="favorites" count="14931"/>
    </popular_shelves>
    <similar_books>
      <book>
        <id>53732</id>
        <title>Ender's Game</title>
        <isbn>0812550706</isbn>
        <average_rating>4.30</average_rating>
        <authors>
          <author>
            <id>589</id>
            <name>Orson Scott Card</name>
          </author>
        </authors>
      </book>
    </similar_books>
  </book>
</GoodreadsResponse>`

const authorXML = `<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <Request>
    <authentication>true</authentication>
    <key><![CDATA[test-key]]></key>
    <method><![CDATA[author_show]]></method>
  </Request>
  <author>
    <id>58</id>
    <name>Frank Herbert</name>
    <link><![CDATA[https://www.goodreads.com/author/show/58.Frank_Herbert]]></link>
    <fans_count type="integer">10412</fans_count>
    <image_url><![CDATA[https://images.gr-assets.com/authors/1168661521p5/58.jpg]]></image_url>
    <small_image_url><![CDATA[https://images.gr-assets.com/authors/1168661521p2/58.jpg]]></small_image_url>
    <about><![CDATA[Franklin Patrick Herbert Jr. was an <i>American</i> science fiction author.]]></about>
    <influences><![CDATA[]]></influences>
    <works_count>322</works_count>
    <gender>male</gender>
    <hometown>Tacoma, Washington</hometown>
    <born_at>1920/10/08</born_at>
    <died_at>1986/02/11</died_at>
    <books>
      <book>
        <id type="integer">234225</id>
        <isbn>0441172717</isbn>
        <isbn13>9780441172719</isbn13>
        <title>Dune (Dune Chronicles, #1)</title>
        <average_rating>4.22</average_rating>
        <ratings_count>553718</ratings_count>
        <num_pages>535</num_pages>
      </book>
      <book>
        <id type="integer">44767458</id>
        <isbn nil="true"/>
        <isbn13 nil="true"/>
        <title>Dune Messiah (Dune Chronicles, #2)</title>
        <average_rating>3.88</average_rating>
        <ratings_count>187254</ratings_count>
        <num_pages>256</num_pages>
      </book>
    </books>
  </author>
</GoodreadsResponse>`

const commentsXML = `<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <Request>
    <authentication>true</authentication>
    <key><![CDATA[test-key]]></key>
    <method><![CDATA[comment_index]]></method>
  </Request>
  <comments start="1" end="2" total="2">
    <comment>
      <id>501</id>
      <body><![CDATA[Great review, now I want to reread it.]]></body>
      <user>
        <id>1001</id>
        <name>Eve Reader</name>
        <link><![CDATA[https://www.goodreads.com/user/show/1001-eve-reader]]></link>
      </user>
      <created_at>Tue Jan 08 10:15:00 -0800 2013</created_at>
      <updated_at>Tue Jan 08 10:15:00 -0800 2013</updated_at>
    </comment>
    <comment>
      <id>502</id>
      <body><![CDATA[The appendices are the best part.]]></body>
      <user>
        <id>1002</id>
        <name>Sam Pages</name>
      </user>
      <created_at>Wed Jan 09 08:00:00 -0800 2013</created_at>
      <updated_at>Thu Jan 10 09:30:00 -0800 2013</updated_at>
    </comment>
  </comments>
</GoodreadsResponse>`

const emptyCommentsXML = `<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <comments start="0" end="0" total="2"/>
</GoodreadsResponse>`

const shelvesXML = `<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <shelves start="1" end="2" total="2">
    <user_shelf>
      <id type="integer">11</id>
      <name>read</name>
      <book_count type="integer">80</book_count>
      <exclusive_flag type="boolean">true</exclusive_flag>
    </user_shelf>
    <user_shelf>
      <id type="integer">12</id>
      <name>to-read</name>
      <book_count type="integer">143</book_count>
      <exclusive_flag type="boolean">true</exclusive_flag>
    </user_shelf>
  </shelves>
</GoodreadsResponse>`

const reviewsXML = `<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <reviews start="1" end="1" total="1">
    <review>
      <id>9001</id>
      <book>
        <id type="integer">234225</id>
        <isbn>0441172717</isbn>
        <title>Dune (Dune Chronicles, #1)</title>
        <authors>
          <author>
            <id>58</id>
            <name>Frank Herbert</name>
          </author>
        </authors>
      </book>
      <rating>5</rating>
      <votes>3</votes>
      <spoiler_flag>false</spoiler_flag>
      <shelves>
        <shelf name="read" exclusive="true" id="11"/>
      </shelves>
      <started_at>Mon Dec 03 00:00:00 -0800 2018</started_at>
      <read_at>Sun Dec 30 00:00:00 -0800 2018</read_at>
      <date_added>Mon Dec 03 11:02:14 -0800 2018</date_added>
      <date_updated>Sun Dec 30 19:44:01 -0800 2018</date_updated>
      <read_count>2</read_count>
      <body><![CDATA[Still the best.]]></body>
      <url><![CDATA[https://www.goodreads.com/review/show/9001]]></url>
      <link><![CDATA[https://www.goodreads.com/review/show/9001]]></link>
    </review>
  </reviews>
</GoodreadsResponse>`

const reviewCountsJSON = `{"books":[{"id":234225,"isbn":"0441172717","isbn13":"9780441172719","ratings_count":553718,"reviews_count":1160487,"text_reviews_count":11298,"work_ratings_count":734214,"work_reviews_count":1399110,"work_text_reviews_count":21074,"average_rating":"4.22"}]}`
